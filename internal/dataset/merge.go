package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrNoInput 目录里没有任何可合并的 CSV（不存在或全部读取失败）
var ErrNoInput = errors.New("no csv files merged")

// MergedFile 一个成功合并的输入文件及其行数
type MergedFile struct {
	Path string
	Rows int
}

// MergeReport 合并结果汇总
type MergeReport struct {
	FilesFound        int          // 目录里发现的 CSV 数
	Merged            []MergedFile // 成功合并的文件（按文件名排序）
	Skipped           []string     // 读取失败或表头不一致被跳过的文件
	RowsRead          int          // 合并前总行数（不含表头）
	DuplicatesRemoved int          // 去重删掉的行数
	RowsWritten       int          // 写入输出文件的行数
}

// Merger CSV 合并器：把一个目录下的多份 CSV 拼成一份
// 典型场景是把多轮生成/多台机器导出的数据汇成一个训练集
type Merger struct {
	logger *zap.Logger
}

// NewMerger 创建合并器
func NewMerger(logger *zap.Logger) *Merger {
	return &Merger{logger: logger}
}

// MergeDir 合并 dir 下全部 *.csv 写入 outPath
//
// - 文件按名字典序合并，第一份可读文件的表头作为基准表头
// - 读不动的文件、表头不一致的文件跳过并告警，不中断整体合并
// - dedup 为真时删除完全重复的行（所有列逐格相同才算重复）
// - 一个文件都没合并进来时返回 ErrNoInput
func (m *Merger) MergeDir(dir, outPath string, dedup bool) (*MergeReport, error) {
	pattern := filepath.Join(dir, "*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list csv files: %w", err)
	}

	// 输出文件若落在输入目录里，重跑时会把上一次的结果也合并进去
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	report := &MergeReport{}
	var header []string
	var rows [][]string

	for _, file := range files {
		absFile, err := filepath.Abs(file)
		if err == nil && absFile == absOut {
			m.logger.Info("skipping previous merge output in input directory", zap.String("file", file))
			continue
		}
		report.FilesFound++

		fileHeader, fileRows, err := readRawCSV(file)
		if err != nil {
			m.logger.Warn("skipping unreadable csv file", zap.String("file", file), zap.Error(err))
			report.Skipped = append(report.Skipped, file)
			continue
		}
		if header == nil {
			header = fileHeader
		} else if !sameHeader(header, fileHeader) {
			m.logger.Warn("skipping csv file with mismatched header",
				zap.String("file", file),
				zap.Strings("expected", header),
				zap.Strings("got", fileHeader))
			report.Skipped = append(report.Skipped, file)
			continue
		}

		rows = append(rows, fileRows...)
		report.Merged = append(report.Merged, MergedFile{Path: file, Rows: len(fileRows)})
		report.RowsRead += len(fileRows)
		m.logger.Info("merged csv file", zap.String("file", file), zap.Int("rows", len(fileRows)))
	}

	if len(report.Merged) == 0 {
		return nil, fmt.Errorf("%w: directory %s", ErrNoInput, dir)
	}

	if dedup {
		rows = dedupRows(rows)
		report.DuplicatesRemoved = report.RowsRead - len(rows)
	}
	report.RowsWritten = len(rows)

	if err := writeRawCSV(outPath, header, rows); err != nil {
		return nil, err
	}

	m.logger.Info("merge complete",
		zap.Int("files_merged", len(report.Merged)),
		zap.Int("files_skipped", len(report.Skipped)),
		zap.Int("rows_read", report.RowsRead),
		zap.Int("duplicates_removed", report.DuplicatesRemoved),
		zap.Int("rows_written", report.RowsWritten),
		zap.String("output", outPath))
	return report, nil
}

// dedupRows 保序去重，所有列逐格相同的行视为重复
func dedupRows(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	kept := rows[:0]
	for _, row := range rows {
		// 用不可见分隔符拼键，避免列值本身包含逗号时误判
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	return kept
}

// readRawCSV 读取任意表头的 CSV，返回表头与数据行
func readRawCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("csv file is empty: %s", path)
	}
	return all[0], all[1:], nil
}

// writeRawCSV 写出表头与数据行
func writeRawCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv file: %w", err)
	}
	return nil
}
