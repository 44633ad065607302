package reporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"wifiparse/internal/core/model"
)

func strPtr(s string) *string {
	return &s
}

func sampleResult() *model.ParseResult {
	return &model.ParseResult{
		Format: model.FormatAirport,
		Records: []model.NetworkRecord{
			{
				Mac:         strPtr("00:35:1a:90:56:03"),
				SSID:        "OurTest",
				Channel:     "112",
				SignalLevel: "-70",
				Security:    "WPA2(PSK/AES/AES)",
			},
			{
				SSID:        "TEST-Wifi",
				Channel:     "1",
				SignalLevel: "-67",
				Security:    "wpa2_personal",
			},
		},
		RecordCount: 2,
	}
}

// TestJsonReporter 测试 JSON 导出内容可以还原为记录列表
func TestJsonReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	result := sampleResult()

	if err := NewJsonReporter(path).Report(context.Background(), result); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var records []model.NetworkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}

	if !reflect.DeepEqual(records, result.Records) {
		t.Errorf("Exported records = %+v, want %+v", records, result.Records)
	}

	// MAC 缺失的记录不应有 mac 字段
	if strings.Contains(string(data), `"mac": ""`) {
		t.Error("Expected absent mac to be omitted from json output")
	}
}

// TestCsvReporter 测试 CSV 导出带 BOM、表头和记录行
func TestCsvReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.csv")
	result := sampleResult()

	if err := NewCsvReporter(path).Report(context.Background(), result); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	// UTF-8 BOM 防止 Excel 乱码
	if !strings.HasPrefix(string(data), "\xEF\xBB\xBF") {
		t.Error("Expected csv output to start with UTF-8 BOM")
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d rows", len(rows))
	}

	wantHeader := []string{"SSID", "MAC", "Signal", "Channel", "Security"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("Header = %v, want %v", rows[0], wantHeader)
	}

	wantFirst := []string{"OurTest", "00:35:1a:90:56:03", "-70", "112", "WPA2(PSK/AES/AES)"}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Errorf("Row 1 = %v, want %v", rows[1], wantFirst)
	}

	// MAC 缺失时导出为 N/A
	if rows[2][1] != "N/A" {
		t.Errorf("Expected absent MAC to export as 'N/A', got %q", rows[2][1])
	}
}

// TestMultiReporter 测试多目标同时导出
func TestMultiReporter(t *testing.T) {
	tempDir := t.TempDir()
	jsonPath := filepath.Join(tempDir, "result.json")
	csvPath := filepath.Join(tempDir, "result.csv")

	multi := NewMultiReporter(
		NewJsonReporter(jsonPath),
		NewCsvReporter(csvPath),
	)

	if err := multi.Report(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	for _, path := range []string{jsonPath, csvPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected output file %s to exist: %v", path, err)
		}
	}
}

// TestMultiReporter_CollectsError 测试任一目标失败时返回错误
func TestMultiReporter_CollectsError(t *testing.T) {
	tempDir := t.TempDir()
	jsonPath := filepath.Join(tempDir, "result.json")
	badPath := filepath.Join(tempDir, "missing-dir", "result.csv")

	multi := NewMultiReporter(
		NewJsonReporter(jsonPath),
		NewCsvReporter(badPath),
	)

	if err := multi.Report(context.Background(), sampleResult()); err == nil {
		t.Fatal("Expected error from unwritable csv path")
	}

	// 其他目标不受失败目标影响
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("Expected json output to exist despite csv failure: %v", err)
	}
}

// TestSaveCsvResult_EmptyRecords 测试空结果仍导出表头
func TestSaveCsvResult_EmptyRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	result := &model.ParseResult{Format: model.FormatProfiler, Records: []model.NetworkRecord{}}

	if err := SaveCsvResult(path, result); err != nil {
		t.Fatalf("SaveCsvResult failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	if !strings.HasPrefix(content, "SSID,MAC,Signal,Channel,Security") {
		t.Errorf("Expected header row, got %q", content)
	}
}
