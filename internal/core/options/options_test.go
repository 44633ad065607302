package options

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"wifiparse/internal/core/model"
)

// TestAirportOptions_Validate 测试 airport 解析参数校验
func TestAirportOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    *AirportOptions
		wantErr bool
	}{
		{
			name:    "missing input file",
			opts:    &AirportOptions{},
			wantErr: true,
		},
		{
			name:    "valid with input only",
			opts:    &AirportOptions{InputFile: "scan.txt"},
			wantErr: false,
		},
		{
			name:    "stdin input",
			opts:    &AirportOptions{InputFile: "-"},
			wantErr: false,
		},
		{
			name: "markers and markers file are mutually exclusive",
			opts: &AirportOptions{
				InputFile:   "scan.txt",
				Markers:     []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"},
				MarkersFile: "markers.yaml",
			},
			wantErr: true,
		},
		{
			name: "wrong marker count",
			opts: &AirportOptions{
				InputFile: "scan.txt",
				Markers:   []string{"BSSID", "RSSI"},
			},
			wantErr: true,
		},
		{
			name: "valid custom markers",
			opts: &AirportOptions{
				InputFile: "scan.txt",
				Markers:   []string{"MAC", "SIGNAL", "KANAL", "HT", "SICHERHEIT"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAirportOptions_ResolveMarkers 测试表头标记优先级
func TestAirportOptions_ResolveMarkers(t *testing.T) {
	// 显式标记优先
	explicit := &AirportOptions{
		Markers: []string{"MAC", "SIGNAL", "KANAL", "HT", "SICHERHEIT"},
	}
	markers, err := explicit.ResolveMarkers()
	if err != nil {
		t.Fatalf("ResolveMarkers failed: %v", err)
	}
	if !reflect.DeepEqual(markers, explicit.Markers) {
		t.Errorf("Expected explicit markers, got %v", markers)
	}

	// 无标记时返回 nil，走全局配置
	none := &AirportOptions{}
	markers, err = none.ResolveMarkers()
	if err != nil {
		t.Fatalf("ResolveMarkers failed: %v", err)
	}
	if markers != nil {
		t.Errorf("Expected nil markers, got %v", markers)
	}
}

// TestAirportOptions_ResolveMarkersFromFile 测试从配置文件加载标记
func TestAirportOptions_ResolveMarkersFromFile(t *testing.T) {
	tempDir := t.TempDir()

	markersFile := filepath.Join(tempDir, "markers.yaml")
	content := `
markers:
  - "MAC"
  - "SIGNAL"
  - "KANAL"
  - "HT"
  - "SICHERHEIT"
`
	if err := os.WriteFile(markersFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create markers file: %v", err)
	}

	opts := &AirportOptions{MarkersFile: markersFile}
	markers, err := opts.ResolveMarkers()
	if err != nil {
		t.Fatalf("ResolveMarkers failed: %v", err)
	}

	want := []string{"MAC", "SIGNAL", "KANAL", "HT", "SICHERHEIT"}
	if !reflect.DeepEqual(markers, want) {
		t.Errorf("Markers = %v, want %v", markers, want)
	}

	// 标记数量不足的文件应报错
	badFile := filepath.Join(tempDir, "bad.yaml")
	if err := os.WriteFile(badFile, []byte("markers: [\"MAC\", \"SIGNAL\"]"), 0644); err != nil {
		t.Fatalf("Failed to create markers file: %v", err)
	}
	if _, err := (&AirportOptions{MarkersFile: badFile}).ResolveMarkers(); err == nil {
		t.Error("Expected error for wrong marker count in file")
	}

	// 文件不存在报错
	if _, err := (&AirportOptions{MarkersFile: filepath.Join(tempDir, "missing.yaml")}).ResolveMarkers(); err == nil {
		t.Error("Expected error for missing markers file")
	}
}

// TestProfilerOptions_Validate 测试 profiler 解析参数校验
func TestProfilerOptions_Validate(t *testing.T) {
	if err := (&ProfilerOptions{}).Validate(); err == nil {
		t.Error("Expected error for missing input file")
	}

	if err := (&ProfilerOptions{InputFile: "profiler.json"}).Validate(); err != nil {
		t.Errorf("Expected valid options, got error: %v", err)
	}
}

// TestOptionFormats 测试参数与解析格式的对应关系
func TestOptionFormats(t *testing.T) {
	if format := NewAirportOptions().Format(); format != model.FormatAirport {
		t.Errorf("Expected format 'airport', got '%s'", format)
	}
	if format := NewProfilerOptions().Format(); format != model.FormatProfiler {
		t.Errorf("Expected format 'profiler', got '%s'", format)
	}
}

// TestOutputOptions_Enabled 测试输出参数启用判断
func TestOutputOptions_Enabled(t *testing.T) {
	var empty OutputOptions
	if empty.Enabled() {
		t.Error("Expected empty output options to be disabled")
	}

	jsonOnly := OutputOptions{OutputJson: "a.json"}
	if !jsonOnly.Enabled() {
		t.Error("Expected json output to enable options")
	}

	csvOnly := OutputOptions{OutputCsv: "a.csv"}
	if !csvOnly.Enabled() {
		t.Error("Expected csv output to enable options")
	}
}
