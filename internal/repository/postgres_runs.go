package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// defaultListLimit ListRuns 未指定条数时的默认值
const defaultListLimit = 50

// PostgresRunsRepository 运行台账 Repository 实现（PostgreSQL）
type PostgresRunsRepository struct {
	db *sql.DB
}

// NewPostgresRunsRepository 创建运行台账 Repository
func NewPostgresRunsRepository(db *sql.DB) *PostgresRunsRepository {
	return &PostgresRunsRepository{db: db}
}

// 确保实现了接口
var _ RunsRepository = (*PostgresRunsRepository)(nil)

// RecordRun 登记一次生成运行
func (r *PostgresRunsRepository) RecordRun(ctx context.Context, run *domain.GenerationRun) error {
	query := `
		INSERT INTO generation_runs (
			run_id,
			created_at,
			samples,
			seed,
			target_prevalence,
			achieved_prevalence,
			calibration_iterations,
			outlier_rows,
			output_path,
			duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.RunID,
		run.CreatedAt,
		run.Samples,
		run.Seed,
		run.TargetPrevalence,
		run.AchievedPrevalence,
		run.CalibrationIterations,
		run.OutlierRows,
		run.OutputPath,
		run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation run: %w", err)
	}
	return nil
}

// GetRun 按 run_id 查询运行详情
func (r *PostgresRunsRepository) GetRun(ctx context.Context, runID string) (*domain.GenerationRun, error) {
	if runID == "" {
		return nil, sql.ErrNoRows
	}

	query := `
		SELECT
			run_id::text,
			created_at,
			samples,
			seed,
			target_prevalence,
			achieved_prevalence,
			calibration_iterations,
			outlier_rows,
			output_path,
			duration_ms
		FROM generation_runs
		WHERE run_id = $1
	`

	var run domain.GenerationRun
	var outputPath sql.NullString

	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&run.RunID,
		&run.CreatedAt,
		&run.Samples,
		&run.Seed,
		&run.TargetPrevalence,
		&run.AchievedPrevalence,
		&run.CalibrationIterations,
		&run.OutlierRows,
		&outputPath,
		&run.DurationMs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("generation run not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get generation run: %w", err)
	}

	if outputPath.Valid {
		run.OutputPath = outputPath.String
	}

	return &run, nil
}

// ListRuns 按时间倒序列出最近的运行
func (r *PostgresRunsRepository) ListRuns(ctx context.Context, limit int) ([]*domain.GenerationRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT
			run_id::text,
			created_at,
			samples,
			seed,
			target_prevalence,
			achieved_prevalence,
			calibration_iterations,
			outlier_rows,
			output_path,
			duration_ms
		FROM generation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	runs := []*domain.GenerationRun{}
	for rows.Next() {
		var run domain.GenerationRun
		var outputPath sql.NullString
		if err := rows.Scan(
			&run.RunID,
			&run.CreatedAt,
			&run.Samples,
			&run.Seed,
			&run.TargetPrevalence,
			&run.AchievedPrevalence,
			&run.CalibrationIterations,
			&run.OutlierRows,
			&outputPath,
			&run.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		if outputPath.Valid {
			run.OutputPath = outputPath.String
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generation runs: %w", err)
	}

	return runs, nil
}
