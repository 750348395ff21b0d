package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"
)

// ErrLabelColumnNotFound 输入 CSV 里没有标签列
var ErrLabelColumnNotFound = errors.New("label column not found")

// ErrInvalidTestSize 切分比例不在 (0,1) 开区间内
var ErrInvalidTestSize = errors.New("test size must be between 0 and 1")

// SplitReport 切分结果汇总
type SplitReport struct {
	TotalRows   int
	TrainRows   int
	TestRows    int
	TrainLabels map[string]int // 训练集各标签值的行数
	TestLabels  map[string]int // 测试集各标签值的行数
}

// Splitter 分层切分器：按标签列把 CSV 切成训练/测试两份
// 每个标签值内部按比例切，保证两份数据的类别占比一致
type Splitter struct {
	logger *zap.Logger
}

// NewSplitter 创建切分器
func NewSplitter(logger *zap.Logger) *Splitter {
	return &Splitter{logger: logger}
}

// SplitFile 读取 inPath，按 label_hypertension 分层切分后
// 分别写入 trainPath 和 testPath
//
// - testSize 为测试集占比，必须在 (0,1) 内
// - 每个标签值取 round(testSize × 类内行数) 行进测试集
// - 同一个 seed 产生完全相同的切分
// - 输出保持输入行序（不重排），只是把行分到两个文件
func (s *Splitter) SplitFile(inPath, trainPath, testPath string, testSize float64, seed int64) (*SplitReport, error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTestSize, testSize)
	}

	header, rows, err := readRawCSV(inPath)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input csv has no data rows: %s", inPath)
	}

	labelIdx := -1
	for i, col := range header {
		if col == LabelColumn {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: column %q in %s", ErrLabelColumnNotFound, LabelColumn, inPath)
	}

	// 按标签值分组行号
	groups := map[string][]int{}
	for i, row := range rows {
		if labelIdx >= len(row) {
			return nil, fmt.Errorf("row %d has %d columns, label column is %d", i+2, len(row), labelIdx+1)
		}
		label := row[labelIdx]
		groups[label] = append(groups[label], i)
	}

	// 标签值排序后逐组抽取，保证同种子可复现
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rng := rand.New(rand.NewSource(seed))
	testSet := map[int]bool{}
	for _, label := range labels {
		idx := groups[label]
		shuffled := make([]int, len(idx))
		copy(shuffled, idx)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		nTest := int(math.Round(testSize * float64(len(shuffled))))
		for _, i := range shuffled[:nTest] {
			testSet[i] = true
		}
	}

	report := &SplitReport{
		TotalRows:   len(rows),
		TrainLabels: map[string]int{},
		TestLabels:  map[string]int{},
	}
	var trainRows, testRows [][]string
	for i, row := range rows {
		if testSet[i] {
			testRows = append(testRows, row)
			report.TestLabels[row[labelIdx]]++
		} else {
			trainRows = append(trainRows, row)
			report.TrainLabels[row[labelIdx]]++
		}
	}
	report.TrainRows = len(trainRows)
	report.TestRows = len(testRows)

	if err := writeRawCSV(trainPath, header, trainRows); err != nil {
		return nil, err
	}
	if err := writeRawCSV(testPath, header, testRows); err != nil {
		return nil, err
	}

	s.logger.Info("split complete",
		zap.Int("total_rows", report.TotalRows),
		zap.Int("train_rows", report.TrainRows),
		zap.Int("test_rows", report.TestRows),
		zap.Float64("test_size", testSize),
		zap.Int64("seed", seed),
		zap.String("train_output", trainPath),
		zap.String("test_output", testPath))
	return report, nil
}
