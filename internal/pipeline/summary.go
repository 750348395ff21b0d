package pipeline

import (
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// youngAgeCutoff 年龄分桶阈值，与采样/打分端保持一致
const youngAgeCutoff = 35

// CohortStats 一个分组的行数与阳性率
type CohortStats struct {
	Rows       int     `json:"rows"`
	Positives  int     `json:"positives"`
	Prevalence float64 `json:"prevalence"`
}

func (c *CohortStats) add(label int) {
	c.Rows++
	if label == 1 {
		c.Positives++
	}
}

func (c *CohortStats) finish() {
	if c.Rows > 0 {
		c.Prevalence = float64(c.Positives) / float64(c.Rows)
	}
}

// Summary 数据集生成后的分组统计
//
// YoungHealthy / YoungUnhealthy 对比年轻组里生活方式对阳性率的影响：
// healthy = 不吸烟且运动多且低盐，unhealthy = 吸烟且运动少且高盐。
// 统计在注入缺失值之后做，生活方式字段已被置空的行不进这两个桶
type Summary struct {
	TotalRows  int     `json:"total_rows"`
	Positives  int     `json:"positives"`
	Prevalence float64 `json:"prevalence"`

	Young CohortStats `json:"young"` // age < 35
	Older CohortStats `json:"older"`

	YoungHealthy   CohortStats `json:"young_healthy"`
	YoungUnhealthy CohortStats `json:"young_unhealthy"`
}

// Summarize 计算数据集的分组统计
func Summarize(ds domain.Dataset) *Summary {
	s := &Summary{}
	for _, rec := range ds {
		s.TotalRows++
		if rec.LabelHypertension == 1 {
			s.Positives++
		}

		young := rec.Age < youngAgeCutoff
		if young {
			s.Young.add(rec.LabelHypertension)
		} else {
			s.Older.add(rec.LabelHypertension)
		}

		if !young || rec.SmokingStatus == nil || rec.ExerciseFrequency == nil || rec.SaltConsumption == nil {
			continue
		}
		if *rec.SmokingStatus == domain.SmokingNever &&
			*rec.ExerciseFrequency == domain.LevelHigh &&
			*rec.SaltConsumption == domain.LevelLow {
			s.YoungHealthy.add(rec.LabelHypertension)
		}
		if *rec.SmokingStatus == domain.SmokingSmoker &&
			*rec.ExerciseFrequency == domain.LevelLow &&
			*rec.SaltConsumption == domain.LevelHigh {
			s.YoungUnhealthy.add(rec.LabelHypertension)
		}
	}

	if s.TotalRows > 0 {
		s.Prevalence = float64(s.Positives) / float64(s.TotalRows)
	}
	s.Young.finish()
	s.Older.finish()
	s.YoungHealthy.finish()
	s.YoungUnhealthy.finish()
	return s
}
