// Package corrupt 向干净数据集注入离群值与缺失值
//
// 真实采集的体检数据带录入错误和缺失项；下游清洗流程需要
// 在这类脏数据上验证，所以生成端最后两个阶段专门把数据弄脏：
// - 离群值注入：抽 2% 的行，按四等份分别改体重/身高/腰围/年龄为极端值
// - 缺失值注入：按列概率把可空字段置空
package corrupt

import (
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// OutlierRate 注入离群值的行占比
const OutlierRate = 0.02

// 各列的离群值取值集合：明显低于/高于生理范围的录入错误值
var (
	OutlierWeights = []float64{1, 2, 800, 1000}
	OutlierHeights = []float64{10, 15, 350, 400}
	OutlierBellies = []float64{10, 15, 400, 500}
	OutlierAges    = []int{1, 2, 3, 120, 130, 140}
)

// OutlierInjector 离群值注入器（管线第 6 阶段）
type OutlierInjector struct{}

// NewOutlierInjector 创建离群值注入器
func NewOutlierInjector() *OutlierInjector {
	return &OutlierInjector{}
}

// Apply 注入离群值，返回被改动的行数
//
// 抽 ⌊0.02·N⌋ 个互不重复的行号，按顺序切成四等份：
// 第一份改体重、第二份改身高、第三份改腰围、第四份改年龄；
// 不足四等分的余数行（至多 3 行）保持原样。
// 每行只改一列，列内取值均匀抽取
func (o *OutlierInjector) Apply(rng *rand.Rand, ds domain.Dataset) int {
	k := int(OutlierRate * float64(len(ds)))
	q := k / 4
	if q == 0 {
		return 0
	}

	idx := rng.Perm(len(ds))[:k]

	for _, i := range idx[0:q] {
		v := OutlierWeights[rng.Intn(len(OutlierWeights))]
		ds[i].WeightKg = &v
	}
	for _, i := range idx[q : 2*q] {
		v := OutlierHeights[rng.Intn(len(OutlierHeights))]
		ds[i].HeightCm = &v
	}
	for _, i := range idx[2*q : 3*q] {
		v := OutlierBellies[rng.Intn(len(OutlierBellies))]
		ds[i].BellyCircumferenceCm = &v
	}
	for _, i := range idx[3*q : 4*q] {
		ds[i].Age = OutlierAges[rng.Intn(len(OutlierAges))]
	}

	return 4 * q
}
