package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/logger"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/pipeline"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/repository"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/store"
)

func main() {
	samples := flag.Int("samples", 20000, "number of rows to generate")
	prevalence := flag.Float64("prevalence", 0.29, "target hypertension prevalence")
	seed := flag.Int64("seed", 42, "random seed")
	tolerance := flag.Float64("tolerance", 0.01, "prevalence calibration tolerance")
	outDir := flag.String("out", "dataset", "output directory")
	outFile := flag.String("file", "dummy_data.csv", "output file name")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	startDate := flag.String("start-date", "2023-01-01", "input_time base date (YYYY-MM-DD)")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// 加载配置：环境变量 → 配置文件 → 命令行参数，后者覆盖前者
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config file: %v\n", err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			cfg.Samples = *samples
		case "prevalence":
			cfg.TargetPrevalence = *prevalence
		case "seed":
			cfg.Seed = *seed
		case "tolerance":
			cfg.Tolerance = *tolerance
		case "out":
			cfg.Output.Dir = *outDir
		case "file":
			cfg.Output.File = *outFile
		case "format":
			cfg.Output.Format = *format
		case "start-date":
			cfg.StartDate = *startDate
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "create-dummy-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// 运行台账：数据库不可用时退回内存实现，不拦截生成
	var runs repository.RunsRepository = repository.NewMemoryRunsRepo()
	if cfg.DBEnabled {
		db, err := sql.Open("postgres", cfg.Database.GetDSN())
		if err == nil {
			err = db.Ping()
		}
		if err != nil {
			log.Warn("Database unavailable, falling back to in-memory run catalog", zap.Error(err))
		} else {
			defer db.Close()
			runs = repository.NewPostgresRunsRepository(db)
		}
	}

	// 摘要发布：Redis 不可用时跳过发布
	var kv store.KVStore
	if cfg.RedisEnabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, skipping summary publish", zap.Error(err))
		} else {
			defer client.Close()
			kv = store.NewRedisKVStore(client)
		}
	}

	// 生成数据集
	g := pipeline.NewGenerator(cfg, log, runs, kv)
	res, err := g.Run(ctx)
	if err != nil {
		log.Fatal("Failed to generate dataset", zap.Error(err))
	}

	s := res.Summary
	fmt.Printf("\nDataset generation complete\n")
	fmt.Printf("  Run ID:       %s\n", res.RunID)
	fmt.Printf("  Output:       %s (%s)\n", res.OutputPath, cfg.Output.Format)
	fmt.Printf("  Rows:         %d\n", s.TotalRows)
	fmt.Printf("  Prevalence:   %.4f (target %.2f, %d label flips)\n",
		s.Prevalence, cfg.TargetPrevalence, res.Calibration.Iterations)
	fmt.Printf("  Outlier rows: %d\n", res.OutlierRows)
	fmt.Printf("  Null cells:   %d\n", res.MissingCells)
	fmt.Printf("  Duration:     %s\n", res.Duration.Round(time.Millisecond))
	fmt.Printf("\nCohorts\n")
	fmt.Printf("  Young (<35):  %6d rows, prevalence %.4f\n", s.Young.Rows, s.Young.Prevalence)
	fmt.Printf("  Older (>=35): %6d rows, prevalence %.4f\n", s.Older.Rows, s.Older.Prevalence)
	fmt.Printf("\nLifestyle impact among young rows\n")
	fmt.Printf("  Healthy (never/high/low):    %6d rows, prevalence %.4f\n",
		s.YoungHealthy.Rows, s.YoungHealthy.Prevalence)
	fmt.Printf("  Unhealthy (smoker/low/high): %6d rows, prevalence %.4f\n",
		s.YoungUnhealthy.Rows, s.YoungUnhealthy.Prevalence)
}
