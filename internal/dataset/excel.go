package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// sheetName 数据集工作表名
const sheetName = "Dummy Data"

// datasetColumnWidths 各列宽度，与 Header 顺序对应
var datasetColumnWidths = []float64{
	10, // id
	8,  // age
	10, // gender
	12, // height_cm
	12, // weight_kg
	22, // belly_circumference_cm
	16, // smoking_status
	18, // exercise_frequency
	16, // salt_consumption
	18, // sugar_consumption
	14, // self_emotional
	14, // family_history
	18, // label_hypertension
	20, // input_time
}

// WriteXLSX 把数据集写成 Excel 文件（表头加粗冻结，缺失值留空单元格）
// 供需要在表格软件里人工抽查数据的场景使用；批量训练仍走 CSV
func WriteXLSX(path string, ds domain.Dataset) error {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because SaveAs needs the file to be open

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close() // Close on error
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置默认活动工作表
	f.SetActiveSheet(index)

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 设置列宽
	for i := range Header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(datasetColumnWidths) && datasetColumnWidths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, datasetColumnWidths[i]); err != nil {
				f.Close()
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	// 写入数据（缺失值跳过，保持空单元格）
	for rowIdx, rec := range ds {
		row := rowIdx + 2 // 从第2行开始（第1行是表头）
		for colIdx, value := range recordRow(rec) {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		f.Close()
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close excel file: %w", err)
	}

	return nil
}
