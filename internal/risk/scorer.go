// Package risk 实现高血压风险打分与标签抽取
//
// 打分规则（管线第 3 阶段）：
// - 三个子分量各自累加后归一化到 [0,1]：遗传、生活方式、健康指标
// - 按年龄分桶加权合成，再叠加组合加成项
// - 合成值加 N(0,0.02) 噪声后裁剪到 [0,1] 作为最终风险概率
//
// 年轻组（age < 35）生活方式权重更高（0.45），并带更激进的组合加成；
// 年长组三个分量权重接近均衡
package risk

import (
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// youngAgeCutoff 年龄分桶阈值，与采样端保持一致
const youngAgeCutoff = 35

// 遗传分量：家族史 + 年龄台阶 + 性别，除以 3.0 归一化
const (
	geneticFamilyPoints = 1.5
	geneticAge60Points  = 1.2
	geneticAge45Points  = 0.9
	geneticAge35Points  = 0.6
	geneticMalePoints   = 0.2
	geneticDivisor      = 3.0
)

// 生活方式分量：四个习惯字段按年龄分桶计分
const (
	youngSaltPoints     = 1.5
	youngSugarPoints    = 1.3
	youngExercisePoints = 1.4
	youngSmokerPoints   = 1.2
	youngQuitPoints     = 0.6
	youngLifestyleDiv   = 5.0

	olderSaltPoints     = 1.2
	olderSugarPoints    = 1.0
	olderExercisePoints = 1.0
	olderSmokerPoints   = 0.8
	olderQuitPoints     = 0.4
	olderLifestyleDiv   = 4.0
)

// 健康分量：BMI 台阶 + 腰围比台阶
const (
	bmiObese2Cutoff = 35.0
	bmiObese1Cutoff = 30.0
	bmiOverCutoff   = 25.0

	femaleWaistRef = 88.0
	maleWaistRef   = 102.0

	waistHighCutoff = 1.2
	waistOverCutoff = 1.0

	youngBMIObese2Points = 1.3
	youngBMIObese1Points = 1.0
	youngBMIOverPoints   = 0.7
	youngWaistHighPoints = 1.2
	youngWaistOverPoints = 0.9
	youngHealthDiv       = 2.5

	olderBMIObese2Points = 1.1
	olderBMIObese1Points = 0.8
	olderBMIOverPoints   = 0.5
	olderWaistHighPoints = 1.0
	olderWaistOverPoints = 0.7
	olderHealthDiv       = 2.1
)

// 分桶合成权重与组合加成
const (
	youngGeneticWeight   = 0.25
	youngLifestyleWeight = 0.45
	youngHealthWeight    = 0.30

	olderGeneticWeight   = 0.35
	olderLifestyleWeight = 0.33
	olderHealthWeight    = 0.32

	youngComboBonus       = 0.20
	youngComboCutoff      = 0.6
	youngFamilyComboBonus = 0.15

	olderComboBonus       = 0.10
	olderComboCutoff      = 0.7
	olderFamilyComboBonus = 0.10
)

// noiseStd 最终风险值的高斯噪声标准差
const noiseStd = 0.02

// Components 单条记录的风险分解
// Risk 为加权合成 + 加成后的值，未加噪声也未裁剪
type Components struct {
	Genetic   float64
	Lifestyle float64
	Health    float64
	Risk      float64
}

// Scorer 风险打分器
type Scorer struct{}

// NewScorer 创建风险打分器
func NewScorer() *Scorer {
	return &Scorer{}
}

// Breakdown 计算单条记录的三个子分量与合成风险（不含噪声）
func (s *Scorer) Breakdown(rec *domain.Record) Components {
	young := rec.Age < youngAgeCutoff

	c := Components{
		Genetic:   s.genetic(rec),
		Lifestyle: s.lifestyle(rec, young),
		Health:    s.health(rec, young),
	}

	if young {
		c.Risk = youngGeneticWeight*c.Genetic + youngLifestyleWeight*c.Lifestyle + youngHealthWeight*c.Health
		if c.Lifestyle > youngComboCutoff && c.Health > youngComboCutoff {
			c.Risk += youngComboBonus
		}
		if intVal(rec.FamilyHistory) == 1 && c.Lifestyle > youngComboCutoff {
			c.Risk += youngFamilyComboBonus
		}
	} else {
		c.Risk = olderGeneticWeight*c.Genetic + olderLifestyleWeight*c.Lifestyle + olderHealthWeight*c.Health
		if c.Lifestyle > olderComboCutoff && c.Health > olderComboCutoff {
			c.Risk += olderComboBonus
		}
		if intVal(rec.FamilyHistory) == 1 && c.Lifestyle > olderComboCutoff {
			c.Risk += olderFamilyComboBonus
		}
	}
	return c
}

// Score 计算单条记录的最终风险概率：合成风险 + N(0,0.02)，裁剪到 [0,1]
// 每条记录恰好消耗一次正态抽取，保证同种子可复现
func (s *Scorer) Score(rng *rand.Rand, rec *domain.Record) float64 {
	c := s.Breakdown(rec)
	return clip01(c.Risk + rng.NormFloat64()*noiseStd)
}

// genetic 遗传分量：家族史、年龄台阶、男性加分，归一化后裁剪
func (s *Scorer) genetic(rec *domain.Record) float64 {
	score := 0.0
	if intVal(rec.FamilyHistory) == 1 {
		score += geneticFamilyPoints
	}
	switch {
	case rec.Age >= 60:
		score += geneticAge60Points
	case rec.Age >= 45:
		score += geneticAge45Points
	case rec.Age >= 35:
		score += geneticAge35Points
	}
	if strVal(rec.Gender) == domain.GenderMale {
		score += geneticMalePoints
	}
	return clip01(score / geneticDivisor)
}

// lifestyle 生活方式分量：盐、糖、运动、吸烟四项按分桶计分
func (s *Scorer) lifestyle(rec *domain.Record, young bool) float64 {
	score := 0.0
	if young {
		if strVal(rec.SaltConsumption) == domain.LevelHigh {
			score += youngSaltPoints
		}
		if strVal(rec.SugarConsumption) == domain.LevelHigh {
			score += youngSugarPoints
		}
		if strVal(rec.ExerciseFrequency) == domain.LevelLow {
			score += youngExercisePoints
		}
		switch strVal(rec.SmokingStatus) {
		case domain.SmokingSmoker:
			score += youngSmokerPoints
		case domain.SmokingQuit:
			score += youngQuitPoints
		}
		return clip01(score / youngLifestyleDiv)
	}

	if strVal(rec.SaltConsumption) == domain.LevelHigh {
		score += olderSaltPoints
	}
	if strVal(rec.SugarConsumption) == domain.LevelHigh {
		score += olderSugarPoints
	}
	if strVal(rec.ExerciseFrequency) == domain.LevelLow {
		score += olderExercisePoints
	}
	switch strVal(rec.SmokingStatus) {
	case domain.SmokingSmoker:
		score += olderSmokerPoints
	case domain.SmokingQuit:
		score += olderQuitPoints
	}
	return clip01(score / olderLifestyleDiv)
}

// health 健康分量：BMI 与腰围比两组台阶
// 腰围参考值按性别取 88（女）/102（其他），与临床腰围截断一致
func (s *Scorer) health(rec *domain.Record, young bool) float64 {
	score := 0.0
	bmi := bmiOf(rec)
	ratio := waistRatioOf(rec)

	if young {
		switch {
		case bmi >= bmiObese2Cutoff:
			score += youngBMIObese2Points
		case bmi >= bmiObese1Cutoff:
			score += youngBMIObese1Points
		case bmi >= bmiOverCutoff:
			score += youngBMIOverPoints
		}
		switch {
		case ratio >= waistHighCutoff:
			score += youngWaistHighPoints
		case ratio >= waistOverCutoff:
			score += youngWaistOverPoints
		}
		return clip01(score / youngHealthDiv)
	}

	switch {
	case bmi >= bmiObese2Cutoff:
		score += olderBMIObese2Points
	case bmi >= bmiObese1Cutoff:
		score += olderBMIObese1Points
	case bmi >= bmiOverCutoff:
		score += olderBMIOverPoints
	}
	switch {
	case ratio >= waistHighCutoff:
		score += olderWaistHighPoints
	case ratio >= waistOverCutoff:
		score += olderWaistOverPoints
	}
	return clip01(score / olderHealthDiv)
}

// bmiOf 由体重/身高推导 BMI；字段缺失或身高非法时返回 0（不计分）
func bmiOf(rec *domain.Record) float64 {
	if rec.WeightKg == nil || rec.HeightCm == nil || *rec.HeightCm <= 0 {
		return 0
	}
	hm := *rec.HeightCm / 100
	return *rec.WeightKg / (hm * hm)
}

// waistRatioOf 腰围 / 性别参考值；腰围缺失时返回 0（不计分）
func waistRatioOf(rec *domain.Record) float64 {
	if rec.BellyCircumferenceCm == nil {
		return 0
	}
	ref := maleWaistRef
	if strVal(rec.Gender) == domain.GenderFemale {
		ref = femaleWaistRef
	}
	return *rec.BellyCircumferenceCm / ref
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
