// Package sampler 提供基础特征与生活方式特征的条件采样
//
// 采样规则：
// - 年龄：两个正态分布各占一半（N(25,5) 年轻组 / N(50,15) 年长组），
//   拼接后裁剪到 [15,90] 并取整
// - 身高按性别条件采样，体重经合成 BMI 推导，腰围由体重线性推导加噪声
// - 生活方式四个分类字段按"年龄 < 35"分桶选择概率表
//
// 所有随机数都来自调用方传入的 *rand.Rand；在固定的抽取顺序下，
// 同一个种子产生完全相同的数据集
package sampler

import (
	"math/rand"
	"time"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// 年龄混合分布参数
const (
	youngAgeMean = 25.0
	youngAgeStd  = 5.0
	olderAgeMean = 50.0
	olderAgeStd  = 15.0

	ageMin = 15
	ageMax = 90
)

// 身高分布参数（按性别）
const (
	maleHeightMean   = 175.0
	maleHeightStd    = 7.0
	femaleHeightMean = 162.0
	femaleHeightStd  = 6.0
)

// 合成 BMI 分布参数（按年龄分桶；体重 = BMI × (身高m)²）
const (
	youngBMIMean = 28.0
	youngBMIStd  = 5.0
	olderBMIMean = 25.0
	olderBMIStd  = 4.0
)

// 腰围推导参数：腰围 = 体重×0.5 + 基数(年轻60/年长50) + N(0,5)
const (
	bellyWeightFactor = 0.5
	youngBellyBase    = 60.0
	olderBellyBase    = 50.0
	bellyNoiseStd     = 5.0
)

// inputTimeDays input_time 在基准日期后均匀分布的天数范围
const inputTimeDays = 365

// youngAgeCutoff 年龄分桶阈值：age < 35 为年轻组
const youngAgeCutoff = 35

// FeatureSampler 基础人口学/体格特征采样器（管线第 1 阶段）
// 产出 id, age, gender, height_cm, weight_kg, belly_circumference_cm, input_time
type FeatureSampler struct {
	baseTime time.Time // input_time 的基准日期
}

// NewFeatureSampler 创建基础特征采样器
func NewFeatureSampler(baseTime time.Time) *FeatureSampler {
	return &FeatureSampler{baseTime: baseTime}
}

// Sample 生成 n 条基础记录
//
// 抽取顺序固定为按列逐批：
//  1. 年龄（先年轻组 n/2 个，再年长组 n-n/2 个）
//  2. 性别（逐行均匀二选一）
//  3. 身高（逐行，按性别选分布）
//  4. 体重（逐行，先抽合成 BMI 再换算）
//  5. 腰围噪声（逐行）
//  6. input_time 天数偏移（逐行）
//
// 此阶段不做边界约束：极端值由后续离群值注入统一负责，
// 采样噪声带来的自然越界也保留
func (s *FeatureSampler) Sample(rng *rand.Rand, n int) domain.Dataset {
	ds := make(domain.Dataset, n)
	for i := 0; i < n; i++ {
		ds[i] = &domain.Record{ID: i + 1}
	}

	// 1. 年龄：两个正态分布各供一半，n 为奇数时年长组多一条
	nYoung := n / 2
	for i := 0; i < n; i++ {
		var age float64
		if i < nYoung {
			age = rng.NormFloat64()*youngAgeStd + youngAgeMean
		} else {
			age = rng.NormFloat64()*olderAgeStd + olderAgeMean
		}
		ds[i].Age = int(clip(age, ageMin, ageMax))
	}

	// 2. 性别：逐行均匀抽取
	for i := 0; i < n; i++ {
		g := domain.GenderMale
		if rng.Intn(2) == 1 {
			g = domain.GenderFemale
		}
		ds[i].Gender = &g
	}

	// 3. 身高：按性别条件采样
	for i := 0; i < n; i++ {
		var h float64
		if *ds[i].Gender == domain.GenderMale {
			h = rng.NormFloat64()*maleHeightStd + maleHeightMean
		} else {
			h = rng.NormFloat64()*femaleHeightStd + femaleHeightMean
		}
		ds[i].HeightCm = &h
	}

	// 4. 体重：合成 BMI（年轻组均值更高）× (身高m)²
	for i := 0; i < n; i++ {
		var bmi float64
		if ds[i].Age < youngAgeCutoff {
			bmi = rng.NormFloat64()*youngBMIStd + youngBMIMean
		} else {
			bmi = rng.NormFloat64()*olderBMIStd + olderBMIMean
		}
		hm := *ds[i].HeightCm / 100
		w := bmi * hm * hm
		ds[i].WeightKg = &w
	}

	// 5. 腰围：体重×0.5 + 年龄分桶基数 + 噪声
	for i := 0; i < n; i++ {
		base := olderBellyBase
		if ds[i].Age < youngAgeCutoff {
			base = youngBellyBase
		}
		b := *ds[i].WeightKg*bellyWeightFactor + base + rng.NormFloat64()*bellyNoiseStd
		ds[i].BellyCircumferenceCm = &b
	}

	// 6. input_time：基准日期 + [0,365) 天均匀偏移
	for i := 0; i < n; i++ {
		days := rng.Intn(inputTimeDays)
		ds[i].InputTime = s.baseTime.AddDate(0, 0, days)
	}

	return ds
}

// clip 裁剪到 [lo, hi]
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
