// Package repository 提供生成运行台账的数据访问层
package repository

import (
	"context"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// RunsRepository 生成运行台账 Repository 接口
// 使用强类型领域模型，不使用 map[string]any
// 台账用于追溯"这份数据集是哪次运行、什么参数生成的"
type RunsRepository interface {
	// ========== 写入接口 ==========

	// RecordRun 登记一次生成运行（run_id 唯一）
	RecordRun(ctx context.Context, run *domain.GenerationRun) error

	// ========== 查询接口 ==========

	// GetRun 按 run_id 查询运行详情
	GetRun(ctx context.Context, runID string) (*domain.GenerationRun, error)

	// ListRuns 按时间倒序列出最近的运行，limit <= 0 时取默认 50 条
	ListRuns(ctx context.Context, limit int) ([]*domain.GenerationRun, error)
}
