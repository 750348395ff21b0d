package corrupt

import (
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// missingRule 一列的置空概率
type missingRule struct {
	column string
	prob   float64
}

// missingRules 各列的缺失概率，按固定顺序逐列注入
// id、age、input_time、label_hypertension 永不置空：
// 主键、分桶依据和监督目标缺了数据集就没法用了
var missingRules = []missingRule{
	{"self_emotional", 0.90},
	{"sugar_consumption", 0.05},
	{"salt_consumption", 0.05},
	{"exercise_frequency", 0.07},
	{"smoking_status", 0.03},
	{"gender", 0.02},
	{"weight_kg", 0.03},
	{"height_cm", 0.03},
	{"belly_circumference_cm", 0.03},
	{"family_history", 0.03},
}

// MissingValueInjector 缺失值注入器（管线第 7 阶段）
type MissingValueInjector struct{}

// NewMissingValueInjector 创建缺失值注入器
func NewMissingValueInjector() *MissingValueInjector {
	return &MissingValueInjector{}
}

// Apply 按列概率把字段置空，返回置空的单元格总数
// 逐列扫描、列内按行序抽取，每个可空单元格恰好消耗一次均匀抽取
func (m *MissingValueInjector) Apply(rng *rand.Rand, ds domain.Dataset) int {
	nulled := 0
	for _, rule := range missingRules {
		for _, rec := range ds {
			if rng.Float64() >= rule.prob {
				continue
			}
			clearColumn(rec, rule.column)
			nulled++
		}
	}
	return nulled
}

func clearColumn(rec *domain.Record, column string) {
	switch column {
	case "self_emotional":
		rec.SelfEmotional = nil
	case "sugar_consumption":
		rec.SugarConsumption = nil
	case "salt_consumption":
		rec.SaltConsumption = nil
	case "exercise_frequency":
		rec.ExerciseFrequency = nil
	case "smoking_status":
		rec.SmokingStatus = nil
	case "gender":
		rec.Gender = nil
	case "weight_kg":
		rec.WeightKg = nil
	case "height_cm":
		rec.HeightCm = nil
	case "belly_circumference_cm":
		rec.BellyCircumferenceCm = nil
	case "family_history":
		rec.FamilyHistory = nil
	}
}
