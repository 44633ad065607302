package options

import (
	"fmt"

	"wifiparse/internal/core/model"
)

// ProfilerOptions 对应 system_profiler JSON 输出的解析参数
type ProfilerOptions struct {
	InputFile string // 扫描输出文件路径，"-" 表示 stdin
	Output    OutputOptions
}

func NewProfilerOptions() *ProfilerOptions {
	return &ProfilerOptions{}
}

func (o *ProfilerOptions) Validate() error {
	if o.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	return nil
}

func (o *ProfilerOptions) Format() model.ParseFormat {
	return model.FormatProfiler
}
