// Package dataset 负责数据集的文件层：CSV/Excel 落盘、读回、合并与切分
//
// CSV 是主交付格式：下游清洗/训练流程按列名消费，空单元格表示缺失值。
// 列顺序固定，消费端按位置+列名双重对齐
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// Header 输出列顺序（所有写出格式共用）
var Header = []string{
	"id",
	"age",
	"gender",
	"height_cm",
	"weight_kg",
	"belly_circumference_cm",
	"smoking_status",
	"exercise_frequency",
	"salt_consumption",
	"sugar_consumption",
	"self_emotional",
	"family_history",
	"label_hypertension",
	"input_time",
}

// LabelColumn 监督目标列名，切分工具按它做分层
const LabelColumn = "label_hypertension"

// TimeLayout input_time 的序列化格式
const TimeLayout = "2006-01-02 15:04:05"

// WriteCSV 把数据集写成 CSV 文件，缺失值写成空单元格
func WriteCSV(path string, ds domain.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range ds {
		if err := w.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write csv row id=%d: %w", rec.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv file: %w", err)
	}
	return nil
}

// ReadCSV 读回本工具生成的 CSV（表头必须完全一致），空单元格还原为缺失值
func ReadCSV(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file is empty: %s", path)
	}
	if !sameHeader(rows[0], Header) {
		return nil, fmt.Errorf("unexpected csv header in %s: %v", path, rows[0])
	}

	ds := make(domain.Dataset, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv row %d: %w", i+2, err)
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// recordRow 按 Header 顺序序列化一条记录
func recordRow(rec *domain.Record) []string {
	return []string{
		strconv.Itoa(rec.ID),
		strconv.Itoa(rec.Age),
		strText(rec.Gender),
		floatText(rec.HeightCm),
		floatText(rec.WeightKg),
		floatText(rec.BellyCircumferenceCm),
		strText(rec.SmokingStatus),
		strText(rec.ExerciseFrequency),
		strText(rec.SaltConsumption),
		strText(rec.SugarConsumption),
		intText(rec.SelfEmotional),
		intText(rec.FamilyHistory),
		strconv.Itoa(rec.LabelHypertension),
		rec.InputTime.Format(TimeLayout),
	}
}

func parseRecord(row []string) (*domain.Record, error) {
	if len(row) != len(Header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(Header), len(row))
	}

	id, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", row[0], err)
	}
	age, err := strconv.Atoi(row[1])
	if err != nil {
		return nil, fmt.Errorf("invalid age %q: %w", row[1], err)
	}
	label, err := strconv.Atoi(row[12])
	if err != nil {
		return nil, fmt.Errorf("invalid label %q: %w", row[12], err)
	}
	inputTime, err := time.Parse(TimeLayout, row[13])
	if err != nil {
		return nil, fmt.Errorf("invalid input_time %q: %w", row[13], err)
	}

	rec := &domain.Record{
		ID:                id,
		Age:               age,
		LabelHypertension: label,
		InputTime:         inputTime,
	}
	rec.Gender = strPtrOf(row[2])
	if rec.HeightCm, err = floatPtrOf(row[3]); err != nil {
		return nil, fmt.Errorf("invalid height_cm %q: %w", row[3], err)
	}
	if rec.WeightKg, err = floatPtrOf(row[4]); err != nil {
		return nil, fmt.Errorf("invalid weight_kg %q: %w", row[4], err)
	}
	if rec.BellyCircumferenceCm, err = floatPtrOf(row[5]); err != nil {
		return nil, fmt.Errorf("invalid belly_circumference_cm %q: %w", row[5], err)
	}
	rec.SmokingStatus = strPtrOf(row[6])
	rec.ExerciseFrequency = strPtrOf(row[7])
	rec.SaltConsumption = strPtrOf(row[8])
	rec.SugarConsumption = strPtrOf(row[9])
	if rec.SelfEmotional, err = intPtrOf(row[10]); err != nil {
		return nil, fmt.Errorf("invalid self_emotional %q: %w", row[10], err)
	}
	if rec.FamilyHistory, err = intPtrOf(row[11]); err != nil {
		return nil, fmt.Errorf("invalid family_history %q: %w", row[11], err)
	}
	return rec, nil
}

func sameHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatText(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intText(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func strPtrOf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func floatPtrOf(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intPtrOf(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
