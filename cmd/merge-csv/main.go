package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/dataset"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/logger"
)

func main() {
	inputDir := flag.String("input", "dataset", "directory containing csv files to merge")
	output := flag.String("output", "dataset/merged_data.csv", "merged output file")
	dedup := flag.Bool("dedup", true, "drop exact duplicate rows")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logger.NewLogger(*logLevel, "console", "merge-csv")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	report, err := dataset.NewMerger(log).MergeDir(*inputDir, *output, *dedup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Merge failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMerged %d of %d csv files\n", len(report.Merged), report.FilesFound)
	for _, f := range report.Merged {
		fmt.Printf("  - %s: %d rows\n", f.Path, f.Rows)
	}
	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped %d files:\n", len(report.Skipped))
		for _, f := range report.Skipped {
			fmt.Printf("  - %s\n", f)
		}
	}
	fmt.Printf("Rows read: %d\n", report.RowsRead)
	if *dedup {
		fmt.Printf("Duplicates removed: %d\n", report.DuplicatesRemoved)
	}
	fmt.Printf("Rows written: %d\n", report.RowsWritten)
	fmt.Printf("Output: %s\n", *output)
}
