package domain

import (
	"time"
)

// 分类字段取值常量（与输出表中的字符串值一一对应）
const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	SmokingNever  = "never"
	SmokingQuit   = "quit"
	SmokingSmoker = "smoker"

	// low/high 用于 exercise_frequency / salt_consumption / sugar_consumption
	// exercise_frequency 中 low = 久坐、high = 经常运动
	LevelLow  = "low"
	LevelHigh = "high"
)

// Record 一条合成的个体记录（对应输出表的一行）
// 指针字段为可空列：缺失值注入后可能为 nil，序列化时输出空单元格
type Record struct {
	// 主键（顺序生成，从 1 开始，生成后不再变化）
	ID int

	// 年龄（采样后位于 [15,90]，离群值注入后可能越界）
	Age int

	// 人口学/体格特征（可空）
	Gender               *string  // Male / Female
	HeightCm             *float64 // 身高（厘米）
	WeightKg             *float64 // 体重（千克）
	BellyCircumferenceCm *float64 // 腰围（厘米）

	// 生活方式特征（可空）
	SmokingStatus     *string // never / quit / smoker
	ExerciseFrequency *string // low / high
	SaltConsumption   *string // low / high
	SugarConsumption  *string // low / high

	// 二值特征（可空；self_emotional 缺失率高达 90%）
	SelfEmotional *int // 0 / 1
	FamilyHistory *int // 0 / 1

	// 录入时间（一年内均匀分布，永不为空）
	InputTime time.Time

	// 标签：是否高血压（由 LabelSampler 赋值，只有 PrevalenceCalibrator 会翻转）
	LabelHypertension int
}

// StrPtr 返回字符串指针（构造可空字段用）
func StrPtr(s string) *string { return &s }

// FloatPtr 返回 float64 指针
func FloatPtr(f float64) *float64 { return &f }

// IntPtr 返回 int 指针
func IntPtr(i int) *int { return &i }
