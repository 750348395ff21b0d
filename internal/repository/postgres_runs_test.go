package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresRunsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresRunsRepository(db)

	return db, mock, repo
}

func sampleRun() *domain.GenerationRun {
	return &domain.GenerationRun{
		RunID:                 "5f1c9a3e-0000-4000-8000-000000000001",
		CreatedAt:             time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Samples:               20000,
		Seed:                  42,
		TargetPrevalence:      0.29,
		AchievedPrevalence:    0.2905,
		CalibrationIterations: 137,
		OutlierRows:           400,
		OutputPath:            "dataset/dummy_data.csv",
		DurationMs:            850,
	}
}

func TestRecordRun_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	run := sampleRun()

	// Setup expected SQL insert
	mock.ExpectExec(`INSERT INTO generation_runs`).
		WithArgs(
			run.RunID, run.CreatedAt, run.Samples, run.Seed,
			run.TargetPrevalence, run.AchievedPrevalence,
			run.CalibrationIterations, run.OutlierRows,
			run.OutputPath, run.DurationMs,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Execute test
	err := repo.RecordRun(context.Background(), run)

	// Verify results
	require.NoError(t, err)

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRun_DBError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	run := sampleRun()

	mock.ExpectExec(`INSERT INTO generation_runs`).
		WillReturnError(sql.ErrConnDone)

	// Execute test
	err := repo.RecordRun(context.Background(), run)

	// Verify results
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record generation run")

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRun_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	want := sampleRun()

	// Setup expected SQL query
	rows := sqlmock.NewRows([]string{
		"run_id", "created_at", "samples", "seed",
		"target_prevalence", "achieved_prevalence",
		"calibration_iterations", "outlier_rows",
		"output_path", "duration_ms",
	}).AddRow(
		want.RunID, want.CreatedAt, want.Samples, want.Seed,
		want.TargetPrevalence, want.AchievedPrevalence,
		want.CalibrationIterations, want.OutlierRows,
		want.OutputPath, want.DurationMs,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(want.RunID).
		WillReturnRows(rows)

	// Execute test
	got, err := repo.GetRun(context.Background(), want.RunID)

	// Verify results
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRun_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("missing-run").
		WillReturnError(sql.ErrNoRows)

	// Execute test
	got, err := repo.GetRun(context.Background(), "missing-run")

	// Verify results
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "generation run not found")

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRuns_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	first := sampleRun()
	second := sampleRun()
	second.RunID = "5f1c9a3e-0000-4000-8000-000000000002"
	second.CreatedAt = first.CreatedAt.Add(-time.Hour)

	// Setup expected SQL query (newest first)
	rows := sqlmock.NewRows([]string{
		"run_id", "created_at", "samples", "seed",
		"target_prevalence", "achieved_prevalence",
		"calibration_iterations", "outlier_rows",
		"output_path", "duration_ms",
	}).AddRow(
		first.RunID, first.CreatedAt, first.Samples, first.Seed,
		first.TargetPrevalence, first.AchievedPrevalence,
		first.CalibrationIterations, first.OutlierRows,
		first.OutputPath, first.DurationMs,
	).AddRow(
		second.RunID, second.CreatedAt, second.Samples, second.Seed,
		second.TargetPrevalence, second.AchievedPrevalence,
		second.CalibrationIterations, second.OutlierRows,
		second.OutputPath, second.DurationMs,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(10).
		WillReturnRows(rows)

	// Execute test
	runs, err := repo.ListRuns(context.Background(), 10)

	// Verify results
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.RunID, runs[0].RunID)
	assert.Equal(t, second.RunID, runs[1].RunID)

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRuns_DefaultLimit(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"run_id", "created_at", "samples", "seed",
		"target_prevalence", "achieved_prevalence",
		"calibration_iterations", "outlier_rows",
		"output_path", "duration_ms",
	})

	// limit <= 0 falls back to the default of 50
	mock.ExpectQuery(`SELECT`).
		WithArgs(50).
		WillReturnRows(rows)

	// Execute test
	runs, err := repo.ListRuns(context.Background(), 0)

	// Verify results
	require.NoError(t, err)
	assert.Len(t, runs, 0)

	// Verify all expectations were met
	assert.NoError(t, mock.ExpectationsWereMet())
}
