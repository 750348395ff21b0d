// Package pipeline 把七个生成阶段串成一次完整的数据集生成运行
//
// 阶段顺序固定：基础特征 → 生活方式 → 风险打分 → 标签抽取 →
// 患病率校准 → 离群值注入 → 缺失值注入。
// 全程共用一个种子初始化的 *rand.Rand，同配置同种子可逐字节复现。
// 生成完成后落盘、登记运行台账并发布摘要；台账和发布失败只告警，
// 数据集交付不受影响
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/calibrate"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/corrupt"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/dataset"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/repository"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/risk"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/sampler"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/store"
)

// Result 一次生成运行的产出
type Result struct {
	RunID        string
	Dataset      domain.Dataset
	Summary      *Summary
	Calibration  *calibrate.Result
	OutlierRows  int
	MissingCells int
	OutputPath   string
	Duration     time.Duration
}

// Generator 数据集生成器
type Generator struct {
	cfg    *config.Config
	logger *zap.Logger
	runs   repository.RunsRepository // 可为 nil：不登记台账
	kv     store.KVStore             // 可为 nil：不发布摘要

	features   *sampler.FeatureSampler
	lifestyle  *sampler.LifestyleSampler
	scorer     *risk.Scorer
	labels     *risk.LabelSampler
	calibrator *calibrate.Calibrator
	outliers   *corrupt.OutlierInjector
	missing    *corrupt.MissingValueInjector
}

// NewGenerator 创建生成器；runs 和 kv 都允许传 nil
// cfg 需要先通过 Validate，BaseTime 依赖合法的 StartDate
func NewGenerator(cfg *config.Config, logger *zap.Logger, runs repository.RunsRepository, kv store.KVStore) *Generator {
	return &Generator{
		cfg:        cfg,
		logger:     logger,
		runs:       runs,
		kv:         kv,
		features:   sampler.NewFeatureSampler(cfg.BaseTime()),
		lifestyle:  sampler.NewLifestyleSampler(),
		scorer:     risk.NewScorer(),
		labels:     risk.NewLabelSampler(),
		calibrator: calibrate.NewCalibrator(cfg.Tolerance),
		outliers:   corrupt.NewOutlierInjector(),
		missing:    corrupt.NewMissingValueInjector(),
	}
}

// Run 执行一次完整的生成运行
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := g.logger.With(zap.String("run_id", runID))

	logger.Info("starting dataset generation",
		zap.Int("samples", g.cfg.Samples),
		zap.Int64("seed", g.cfg.Seed),
		zap.Float64("target_prevalence", g.cfg.TargetPrevalence))

	rng := rand.New(rand.NewSource(g.cfg.Seed))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := g.features.Sample(rng, g.cfg.Samples)
	logger.Info("sampled base features", zap.Int("rows", len(ds)))

	g.lifestyle.Apply(rng, ds)
	logger.Info("sampled lifestyle features")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	probs := make([]float64, len(ds))
	for i, rec := range ds {
		probs[i] = g.scorer.Score(rng, rec)
	}
	logger.Info("scored hypertension risk")

	g.labels.Apply(rng, ds, probs)
	logger.Info("sampled labels", zap.Float64("raw_prevalence", ds.Prevalence()))

	calRes, err := g.calibrator.Calibrate(rng, ds, g.cfg.TargetPrevalence)
	if err != nil {
		return nil, fmt.Errorf("failed to calibrate prevalence: %w", err)
	}
	logger.Info("calibrated prevalence",
		zap.Float64("achieved", calRes.Achieved),
		zap.Int("iterations", calRes.Iterations))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outlierRows := g.outliers.Apply(rng, ds)
	logger.Info("injected outliers", zap.Int("rows", outlierRows))

	missingCells := g.missing.Apply(rng, ds)
	logger.Info("injected missing values", zap.Int("cells", missingCells))

	summary := Summarize(ds)

	outputPath, err := g.writeOutput(ds)
	if err != nil {
		return nil, err
	}
	logger.Info("wrote dataset",
		zap.String("path", outputPath),
		zap.String("format", g.cfg.Output.Format))

	duration := time.Since(start)
	run := &domain.GenerationRun{
		RunID:                 runID,
		CreatedAt:             time.Now().UTC(),
		Samples:               g.cfg.Samples,
		Seed:                  g.cfg.Seed,
		TargetPrevalence:      g.cfg.TargetPrevalence,
		AchievedPrevalence:    calRes.Achieved,
		CalibrationIterations: calRes.Iterations,
		OutlierRows:           outlierRows,
		OutputPath:            outputPath,
		DurationMs:            duration.Milliseconds(),
	}

	if g.runs != nil {
		if err := g.runs.RecordRun(ctx, run); err != nil {
			logger.Warn("failed to record generation run", zap.Error(err))
		}
	}
	if g.kv != nil {
		if err := g.publishRun(ctx, run, summary); err != nil {
			logger.Warn("failed to publish run summary", zap.Error(err))
		}
	}

	logger.Info("dataset generation complete",
		zap.Float64("prevalence", summary.Prevalence),
		zap.Duration("duration", duration))

	return &Result{
		RunID:        runID,
		Dataset:      ds,
		Summary:      summary,
		Calibration:  calRes,
		OutlierRows:  outlierRows,
		MissingCells: missingCells,
		OutputPath:   outputPath,
		Duration:     duration,
	}, nil
}

// writeOutput 按配置的格式落盘，返回输出文件路径
func (g *Generator) writeOutput(ds domain.Dataset) (string, error) {
	if err := os.MkdirAll(g.cfg.Output.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(g.cfg.Output.Dir, g.cfg.Output.File)

	var err error
	switch g.cfg.Output.Format {
	case "xlsx":
		err = dataset.WriteXLSX(path, ds)
	default:
		err = dataset.WriteCSV(path, ds)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
