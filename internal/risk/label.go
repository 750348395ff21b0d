package risk

import (
	"math"
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// sigmoid 锐化参数：以 0.5 为中心、斜率 12 的 S 形变换
// 把风险概率推向两端，降低标签在中段的随机性
const (
	sigmoidSteepness = 12.0
	sigmoidCenter    = 0.5
)

// Sigmoid 对风险概率做锐化：1 / (1 + exp(-12·(p-0.5)))
func Sigmoid(p float64) float64 {
	return 1.0 / (1.0 + math.Exp(-sigmoidSteepness*(p-sigmoidCenter)))
}

// LabelSampler 标签抽取器（管线第 4 阶段）
// 对每条记录按锐化后的概率做一次伯努利抽取，写入 label_hypertension
type LabelSampler struct{}

// NewLabelSampler 创建标签抽取器
func NewLabelSampler() *LabelSampler {
	return &LabelSampler{}
}

// Apply 按风险概率为数据集写入标签
// probs 与 ds 按下标对齐；每条记录恰好消耗一次均匀抽取
func (s *LabelSampler) Apply(rng *rand.Rand, ds domain.Dataset, probs []float64) {
	for i, rec := range ds {
		label := 0
		if rng.Float64() < Sigmoid(probs[i]) {
			label = 1
		}
		rec.LabelHypertension = label
	}
}
