package domain

import (
	"time"
)

// GenerationRun 一次数据集生成运行的登记信息（对应 generation_runs 表）
// 用于追溯：同样的 (samples, seed, target_prevalence) 可以复现同一份数据集
type GenerationRun struct {
	RunID     string    `json:"run_id"`     // UUID, PRIMARY KEY
	CreatedAt time.Time `json:"created_at"` // TIMESTAMPTZ, NOT NULL

	// 生成配置
	Samples          int     `json:"samples"`           // INT, NOT NULL
	Seed             int64   `json:"seed"`              // BIGINT, NOT NULL
	TargetPrevalence float64 `json:"target_prevalence"` // DOUBLE PRECISION, NOT NULL

	// 运行结果
	AchievedPrevalence    float64 `json:"achieved_prevalence"`    // 校准后的实际阳性率
	CalibrationIterations int     `json:"calibration_iterations"` // 校准循环翻转次数
	OutlierRows           int     `json:"outlier_rows"`           // 被离群值覆写的行数
	OutputPath            string  `json:"output_path"`            // 输出文件路径
	DurationMs            int64   `json:"duration_ms"`            // 管线耗时（毫秒）
}
