package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"wifiparse/internal/core/model"
)

// JsonReporter 负责将解析结果导出为 JSON 文件
type JsonReporter struct {
	FilePath string
}

func NewJsonReporter(filePath string) *JsonReporter {
	return &JsonReporter{
		FilePath: filePath,
	}
}

// Report 导出记录列表，只保留解析出的网络记录本身
func (r *JsonReporter) Report(ctx context.Context, result *model.ParseResult) error {
	return SaveJsonResult(r.FilePath, result.Records)
}

// SaveJsonResult 这是一个辅助函数，用于一次性将结果保存为 JSON
func SaveJsonResult(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create json file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write json output: %v", err)
	}

	fmt.Printf("[+] Results saved to %s\n", path)
	return nil
}
