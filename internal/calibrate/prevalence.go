// Package calibrate 把数据集的阳性率校准到目标患病率
//
// 标签抽取是随机的，实际阳性率会偏离目标；本包通过随机翻转标签
// 把阳性率拉回目标 ± 容差窗口（管线第 5 阶段）。
// 只改 label_hypertension 一列，特征保持不变
package calibrate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// ConvergenceError 在迭代上限内未能进入容差窗口
// 目标在当前样本数下不可达时（窗口落在两个可达比例之间）会触发
type ConvergenceError struct {
	Target     float64
	Achieved   float64
	Tolerance  float64
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("prevalence calibration did not converge: target=%.4f achieved=%.4f tolerance=%.4f after %d iterations",
		e.Target, e.Achieved, e.Tolerance, e.Iterations)
}

// Result 校准结果
type Result struct {
	Iterations int     // 实际翻转次数
	Achieved   float64 // 校准后的阳性率
}

// Calibrator 患病率校准器
type Calibrator struct {
	tolerance float64
}

// NewCalibrator 创建校准器，tolerance 为允许的阳性率绝对偏差
func NewCalibrator(tolerance float64) *Calibrator {
	return &Calibrator{tolerance: tolerance}
}

// Calibrate 随机翻转标签直到 |阳性率 - target| ≤ tolerance
//
// 阳性率偏低时从阴性行中均匀抽一行翻成阳性，偏高时反向；
// 每次翻转恰好消耗一次均匀抽取。迭代上限为数据集长度：
// 每次翻转都让阳性行数向目标移动一行，超过上限即判定目标不可达
func (c *Calibrator) Calibrate(rng *rand.Rand, ds domain.Dataset, target float64) (*Result, error) {
	if len(ds) == 0 {
		return nil, &ConvergenceError{Target: target, Achieved: 0, Tolerance: c.tolerance, Iterations: 0}
	}

	// 维护阳性/阴性行的下标池，翻转时在两池间搬移
	posIdx := make([]int, 0, len(ds))
	negIdx := make([]int, 0, len(ds))
	for i, rec := range ds {
		if rec.LabelHypertension == 1 {
			posIdx = append(posIdx, i)
		} else {
			negIdx = append(negIdx, i)
		}
	}

	n := float64(len(ds))
	maxIterations := len(ds)
	iterations := 0

	for iterations < maxIterations {
		current := float64(len(posIdx)) / n
		if math.Abs(current-target) <= c.tolerance {
			return &Result{Iterations: iterations, Achieved: current}, nil
		}

		if current < target {
			// 阴性翻阳性
			j := rng.Intn(len(negIdx))
			row := negIdx[j]
			ds[row].LabelHypertension = 1
			negIdx[j] = negIdx[len(negIdx)-1]
			negIdx = negIdx[:len(negIdx)-1]
			posIdx = append(posIdx, row)
		} else {
			// 阳性翻阴性
			j := rng.Intn(len(posIdx))
			row := posIdx[j]
			ds[row].LabelHypertension = 0
			posIdx[j] = posIdx[len(posIdx)-1]
			posIdx = posIdx[:len(posIdx)-1]
			negIdx = append(negIdx, row)
		}
		iterations++
	}

	achieved := float64(len(posIdx)) / n
	if math.Abs(achieved-target) <= c.tolerance {
		return &Result{Iterations: iterations, Achieved: achieved}, nil
	}
	return nil, &ConvergenceError{
		Target:     target,
		Achieved:   achieved,
		Tolerance:  c.tolerance,
		Iterations: iterations,
	}
}
