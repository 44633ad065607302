package factory

import (
	"fmt"

	"wifiparse/internal/config"
	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser"
	"wifiparse/internal/core/parser/airport"
	"wifiparse/internal/core/parser/profiler"
)

// NewAirportParser 创建表格输出解析器
// 列标记取自配置，本地化系统可通过配置覆盖表头标记
func NewAirportParser() *airport.Parser {
	cfg := config.GetConfig()
	if cfg.Parser != nil && cfg.Parser.Airport != nil {
		return airport.NewParser(cfg.Parser.Airport.Markers)
	}
	return airport.NewParser(nil)
}

// NewProfilerParser 创建 JSON 输出解析器
func NewProfilerParser() *profiler.Parser {
	cfg := config.GetConfig()
	if cfg.Parser != nil && cfg.Parser.Profiler != nil {
		return profiler.NewParser(cfg.Parser.Profiler.SecurityPrefix, cfg.Parser.Profiler.SignalSeparator)
	}
	return profiler.NewParser("", "")
}

// NewParser 按输出格式创建对应的解析器
func NewParser(format model.ParseFormat) (parser.Parser, error) {
	switch format {
	case model.FormatAirport:
		return NewAirportParser(), nil
	case model.FormatProfiler:
		return NewProfilerParser(), nil
	default:
		return nil, fmt.Errorf("unsupported parse format: %s", format)
	}
}
