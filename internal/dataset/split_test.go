package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeLabeledCSV 生成 total 行、前 positive 行标签为 1 的输入文件
func writeLabeledCSV(t *testing.T, path string, total, positive int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,age,label_hypertension\n")
	for i := 0; i < total; i++ {
		label := 0
		if i < positive {
			label = 1
		}
		fmt.Fprintf(&b, "%d,%d,%d\n", i+1, 20+i%50, label)
	}
	writeTestCSV(t, path, b.String())
}

func TestSplitFile_StratifiedCounts(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.csv")
	train := filepath.Join(dir, "train.csv")
	test := filepath.Join(dir, "test.csv")
	writeLabeledCSV(t, in, 1000, 290)

	report, err := NewSplitter(zap.NewNop()).SplitFile(in, train, test, 0.3, 42)
	require.NoError(t, err)

	assert.Equal(t, 1000, report.TotalRows)
	assert.Equal(t, 700, report.TrainRows)
	assert.Equal(t, 300, report.TestRows)

	// 分层：两份数据的阳性占比都保持 29%
	assert.Equal(t, 87, report.TestLabels["1"])
	assert.Equal(t, 213, report.TestLabels["0"])
	assert.Equal(t, 203, report.TrainLabels["1"])
	assert.Equal(t, 497, report.TrainLabels["0"])

	_, trainRows, err := readRawCSV(train)
	require.NoError(t, err)
	_, testRows, err := readRawCSV(test)
	require.NoError(t, err)
	assert.Len(t, trainRows, 700)
	assert.Len(t, testRows, 300)

	// 行没有丢也没有重复
	seen := map[string]bool{}
	for _, row := range append(trainRows, testRows...) {
		require.False(t, seen[row[0]], "row id %s appears twice", row[0])
		seen[row[0]] = true
	}
	assert.Len(t, seen, 1000)
}

func TestSplitFile_Deterministic(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.csv")
	writeLabeledCSV(t, in, 500, 150)

	s := NewSplitter(zap.NewNop())

	trainA := filepath.Join(dir, "train_a.csv")
	testA := filepath.Join(dir, "test_a.csv")
	_, err := s.SplitFile(in, trainA, testA, 0.3, 42)
	require.NoError(t, err)

	trainB := filepath.Join(dir, "train_b.csv")
	testB := filepath.Join(dir, "test_b.csv")
	_, err = s.SplitFile(in, trainB, testB, 0.3, 42)
	require.NoError(t, err)

	_, rowsA, err := readRawCSV(testA)
	require.NoError(t, err)
	_, rowsB, err := readRawCSV(testB)
	require.NoError(t, err)
	require.Equal(t, rowsA, rowsB)

	// 换种子应给出不同的抽取
	trainC := filepath.Join(dir, "train_c.csv")
	testC := filepath.Join(dir, "test_c.csv")
	_, err = s.SplitFile(in, trainC, testC, 0.3, 7)
	require.NoError(t, err)

	_, rowsC, err := readRawCSV(testC)
	require.NoError(t, err)
	assert.NotEqual(t, rowsA, rowsC)
}

func TestSplitFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := NewSplitter(zap.NewNop()).SplitFile(
		filepath.Join(dir, "nope.csv"),
		filepath.Join(dir, "train.csv"),
		filepath.Join(dir, "test.csv"),
		0.3, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open csv file")
}

func TestSplitFile_MissingLabelColumn(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.csv")
	writeTestCSV(t, in, "id,age\n1,30\n2,40\n")

	_, err := NewSplitter(zap.NewNop()).SplitFile(
		in,
		filepath.Join(dir, "train.csv"),
		filepath.Join(dir, "test.csv"),
		0.3, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLabelColumnNotFound))
}

func TestSplitFile_InvalidTestSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.csv")
	writeLabeledCSV(t, in, 10, 3)

	s := NewSplitter(zap.NewNop())
	for _, size := range []float64{0, 1, -0.2, 1.5} {
		_, err := s.SplitFile(in, filepath.Join(dir, "train.csv"), filepath.Join(dir, "test.csv"), size, 42)
		require.Error(t, err, "size=%v", size)
		assert.True(t, errors.Is(err, ErrInvalidTestSize))
	}
}

func TestSplitFile_NoDataRows(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.csv")
	writeTestCSV(t, in, "id,age,label_hypertension\n")

	_, err := NewSplitter(zap.NewNop()).SplitFile(
		in,
		filepath.Join(dir, "train.csv"),
		filepath.Join(dir, "test.csv"),
		0.3, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}
