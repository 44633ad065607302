package parse

import (
	"fmt"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/options"
	parsesvc "wifiparse/internal/service/parse"

	"github.com/spf13/cobra"
)

// NewProfilerParseCmd 创建 system_profiler 结构化输出解析命令
func NewProfilerParseCmd() *cobra.Command {
	opts := options.NewProfilerOptions()

	var cmd = &cobra.Command{
		Use:   "profiler",
		Short: "解析 system_profiler SPAirPortDataType -json 输出",
		Long:  `解析 system_profiler 的结构化输出，遍历无线网卡接口并提取周边网络记录。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			// 注入全局输出参数
			opts.Output = globalOutputOptions

			text, source, err := readInput(opts.InputFile)
			if err != nil {
				return err
			}

			service := parsesvc.NewParseService()

			fmt.Printf("[*] Parsing system_profiler output from %s...\n", source)
			result, err := service.ParseText(model.FormatProfiler, text, source)
			if err != nil {
				return err
			}

			return reportResult(result, opts.Output)
		},
	}

	// 绑定 Flags
	flags := cmd.Flags()
	flags.StringVarP(&opts.InputFile, "file", "f", "", "扫描输出文件路径 (- 表示 stdin)")

	cmd.MarkFlagRequired("file")

	return cmd
}
