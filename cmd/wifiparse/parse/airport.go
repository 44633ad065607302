package parse

import (
	"fmt"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/options"
	"wifiparse/internal/core/parser/airport"
	parsesvc "wifiparse/internal/service/parse"

	"github.com/spf13/cobra"
)

// NewAirportParseCmd 创建 airport 表格输出解析命令
func NewAirportParseCmd() *cobra.Command {
	opts := options.NewAirportOptions()

	var cmd = &cobra.Command{
		Use:   "airport",
		Short: "解析 airport -s 表格输出",
		Long: `解析 airport 扫描工具的表格输出，按表头列标记切分每行并提取网络记录。
本地化系统可以通过 --markers 或 --markers-file 覆盖表头标记。`,
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

			markers, err := opts.ResolveMarkers()
			if err != nil {
				return err
			}

			service := parsesvc.NewParseService()
			if markers != nil {
				// 命令行标记覆盖全局配置
				service.Register(airport.NewParser(markers))
			}

			fmt.Printf("[*] Parsing airport scan output from %s...\n", source)
			result, err := service.ParseText(model.FormatAirport, text, source)
			if err != nil {
				return err
			}

			return reportResult(result, opts.Output)
		},
	}

	// 绑定 Flags
	flags := cmd.Flags()
	flags.StringVarP(&opts.InputFile, "file", "f", "", "扫描输出文件路径 (- 表示 stdin)")
	flags.StringSliceVar(&opts.Markers, "markers", nil, "自定义表头标记，按列顺序共5个 (e.g. BSSID,RSSI,CHANNEL,HT,SECURITY)")
	flags.StringVar(&opts.MarkersFile, "markers-file", "", "表头标记配置文件路径 (yaml)")

	cmd.MarkFlagRequired("file")

	return cmd
}
