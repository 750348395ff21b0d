package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/config"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/repository"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command line arguments
	var runID = flag.String("id", "", "Show a single generation run by run ID")
	var limit = flag.Int("limit", 20, "Maximum number of runs to list (newest first)")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// Connect to database
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		log.Fatalf("Cannot open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	fmt.Printf("Connected to database: %s\n\n", cfg.Database.Database)

	repo := repository.NewPostgresRunsRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if *runID != "" {
		run, err := repo.GetRun(ctx, *runID)
		if err != nil {
			log.Fatalf("Query error: %v", err)
		}
		printRuns([]*domain.GenerationRun{run})
		return
	}

	runs, err := repo.ListRuns(ctx, *limit)
	if err != nil {
		log.Fatalf("Query error: %v", err)
	}
	printRuns(runs)
}

func printRuns(runs []*domain.GenerationRun) {
	fmt.Println("Generation Runs:")
	fmt.Println("Run ID | Created At | Samples | Seed | Target | Achieved | Flips | Outliers | Output | Duration")
	fmt.Println("-------|------------|---------|------|--------|----------|-------|----------|--------|---------")

	if len(runs) == 0 {
		fmt.Println("(No records found)")
		return
	}

	for _, run := range runs {
		fmt.Printf("%s | %s | %d | %d | %.4f | %.4f | %d | %d | %s | %dms\n",
			run.RunID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Seed,
			run.TargetPrevalence,
			run.AchievedPrevalence,
			run.CalibrationIterations,
			run.OutlierRows,
			run.OutputPath,
			run.DurationMs)
	}
}
