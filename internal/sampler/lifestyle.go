package sampler

import (
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// 生活方式分类取值集合（概率表与取值一一对应）
var (
	smokingValues = []string{domain.SmokingNever, domain.SmokingQuit, domain.SmokingSmoker}
	levelValues   = []string{domain.LevelLow, domain.LevelHigh}
)

// 生活方式概率表：按"年龄 < 35"分桶
// 年轻组吸烟/高盐/高糖/缺乏运动比例更高，风险打分端会对应加重权重
var (
	youngSmokingProbs = []float64{0.4, 0.1, 0.5}
	olderSmokingProbs = []float64{0.6, 0.3, 0.1}

	youngExerciseProbs = []float64{0.7, 0.3}
	olderExerciseProbs = []float64{0.4, 0.6}

	youngSaltProbs = []float64{0.3, 0.7}
	olderSaltProbs = []float64{0.6, 0.4}

	youngSugarProbs = []float64{0.3, 0.7}
	olderSugarProbs = []float64{0.6, 0.4}
)

// 二值字段概率（不分年龄桶）
const (
	selfEmotionalProb = 0.5
	familyHistoryProb = 0.3
)

// LifestyleSampler 生活方式特征采样器（管线第 2 阶段）
// 在已有基础特征的数据集上补充 smoking_status, exercise_frequency,
// salt_consumption, sugar_consumption, self_emotional, family_history
type LifestyleSampler struct{}

// NewLifestyleSampler 创建生活方式采样器
func NewLifestyleSampler() *LifestyleSampler {
	return &LifestyleSampler{}
}

// Apply 为数据集逐列填充生活方式字段
//
// 抽取顺序固定为按列逐批：吸烟 → 运动 → 盐 → 糖 → 情绪自评 → 家族史；
// 每列内按行序抽取，概率表由该行年龄分桶决定
func (s *LifestyleSampler) Apply(rng *rand.Rand, ds domain.Dataset) {
	for _, rec := range ds {
		v := weightedChoice(rng, smokingValues, smokingProbs(rec.Age))
		rec.SmokingStatus = &v
	}
	for _, rec := range ds {
		v := weightedChoice(rng, levelValues, exerciseProbs(rec.Age))
		rec.ExerciseFrequency = &v
	}
	for _, rec := range ds {
		v := weightedChoice(rng, levelValues, saltProbs(rec.Age))
		rec.SaltConsumption = &v
	}
	for _, rec := range ds {
		v := weightedChoice(rng, levelValues, sugarProbs(rec.Age))
		rec.SugarConsumption = &v
	}
	for _, rec := range ds {
		v := bernoulli(rng, selfEmotionalProb)
		rec.SelfEmotional = &v
	}
	for _, rec := range ds {
		v := bernoulli(rng, familyHistoryProb)
		rec.FamilyHistory = &v
	}
}

func smokingProbs(age int) []float64 {
	if age < youngAgeCutoff {
		return youngSmokingProbs
	}
	return olderSmokingProbs
}

func exerciseProbs(age int) []float64 {
	if age < youngAgeCutoff {
		return youngExerciseProbs
	}
	return olderExerciseProbs
}

func saltProbs(age int) []float64 {
	if age < youngAgeCutoff {
		return youngSaltProbs
	}
	return olderSaltProbs
}

func sugarProbs(age int) []float64 {
	if age < youngAgeCutoff {
		return youngSugarProbs
	}
	return olderSugarProbs
}

// weightedChoice 按概率表选取一个取值，累积概率扫描实现
// probs 之和应为 1；浮点余量兜底落到最后一个取值
func weightedChoice(rng *rand.Rand, values []string, probs []float64) string {
	u := rng.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if u < cum {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// bernoulli 以概率 p 返回 1，否则返回 0
func bernoulli(rng *rand.Rand, p float64) int {
	if rng.Float64() < p {
		return 1
	}
	return 0
}
