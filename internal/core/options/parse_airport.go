package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser/airport"
)

// AirportOptions 对应 airport 表格输出的解析参数
type AirportOptions struct {
	InputFile   string   // 扫描输出文件路径，"-" 表示 stdin
	Markers     []string // 自定义表头标记(五个，按列顺序)
	MarkersFile string   // 表头标记配置文件路径(yaml)
	Output      OutputOptions
}

func NewAirportOptions() *AirportOptions {
	return &AirportOptions{}
}

func (o *AirportOptions) Validate() error {
	if o.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if len(o.Markers) > 0 && o.MarkersFile != "" {
		return fmt.Errorf("--markers and --markers-file are mutually exclusive")
	}
	if len(o.Markers) > 0 && len(o.Markers) != len(airport.DefaultMarkers) {
		return fmt.Errorf("expected %d header markers, got %d", len(airport.DefaultMarkers), len(o.Markers))
	}
	return nil
}

func (o *AirportOptions) Format() model.ParseFormat {
	return model.FormatAirport
}

// markerProfile 表头标记配置文件结构
type markerProfile struct {
	Markers []string `yaml:"markers"`
}

// ResolveMarkers 返回生效的表头标记
// 优先级: --markers > --markers-file > 全局配置/默认值(返回 nil 表示使用后者)
func (o *AirportOptions) ResolveMarkers() ([]string, error) {
	if len(o.Markers) > 0 {
		return o.Markers, nil
	}
	if o.MarkersFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(o.MarkersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read markers file: %w", err)
	}

	var profile markerProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse markers file: %w", err)
	}
	if len(profile.Markers) != len(airport.DefaultMarkers) {
		return nil, fmt.Errorf("markers file must define %d markers, got %d", len(airport.DefaultMarkers), len(profile.Markers))
	}
	return profile.Markers, nil
}
