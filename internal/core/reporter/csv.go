package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"wifiparse/internal/core/model"
)

// CsvReporter 负责将解析结果导出为 CSV 文件
type CsvReporter struct {
	FilePath string
}

func NewCsvReporter(filePath string) *CsvReporter {
	return &CsvReporter{
		FilePath: filePath,
	}
}

func (r *CsvReporter) Report(ctx context.Context, result *model.ParseResult) error {
	return SaveCsvResult(r.FilePath, result)
}

// SaveCsvResult 这是一个辅助函数，用于一次性将结果保存为 CSV
func SaveCsvResult(path string, data TabularData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %v", err)
	}
	defer f.Close()

	// 写入 UTF-8 BOM，防止 Excel 打开乱码
	f.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := data.Headers()
	if len(headers) == 0 {
		return fmt.Errorf("no tabular data found to export")
	}

	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %v", err)
	}
	if err := w.WriteAll(data.Rows()); err != nil {
		return fmt.Errorf("failed to write rows: %v", err)
	}

	fmt.Printf("[+] Results saved to %s\n", path)
	return nil
}
