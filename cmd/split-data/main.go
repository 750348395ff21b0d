package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/dataset"
	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/logger"
)

func main() {
	input := flag.String("input", "dataset/dummy_data.csv", "input csv file")
	train := flag.String("train", "dataset/train_data.csv", "train output file")
	test := flag.String("test", "dataset/test_data.csv", "test output file")
	testSize := flag.Float64("test-size", 0.3, "fraction of rows for the test set")
	seed := flag.Int64("seed", 42, "shuffle seed")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logger.NewLogger(*logLevel, "console", "split-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	report, err := dataset.NewSplitter(log).SplitFile(*input, *train, *test, *testSize, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Split failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSplit %d rows into train %d / test %d (test size %.2f, seed %d)\n",
		report.TotalRows, report.TrainRows, report.TestRows, *testSize, *seed)
	printLabelCounts("Train", report.TrainLabels, report.TrainRows)
	printLabelCounts("Test", report.TestLabels, report.TestRows)
	fmt.Printf("Train output: %s\n", *train)
	fmt.Printf("Test output:  %s\n", *test)
}

// printLabelCounts prints the per-label row counts of one output set.
func printLabelCounts(name string, counts map[string]int, total int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("%s label distribution:\n", name)
	for _, label := range labels {
		n := counts[label]
		fmt.Printf("  %s=%s: %d (%.1f%%)\n", dataset.LabelColumn, label, n, 100*float64(n)/float64(total))
	}
}
