package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/options"
	"wifiparse/internal/core/reporter"

	"github.com/spf13/cobra"
)

var globalOutputOptions options.OutputOptions

// NewParseCmd 创建 parse 父命令
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "解析扫描输出",
		Long: `解析无线网络扫描命令的输出文本，提取网络记录。
请使用具体的子命令选择输出格式。`,
	}

	// 定义持久化 Flags (所有子命令都可用)
	pFlags := cmd.PersistentFlags()
	// 注意: Shorthand 必须是单个字符。这里我们只注册长参数。
	pFlags.StringVar(&globalOutputOptions.OutputJson, "outputJson", "", "指定保存json文件路径[以.json结尾] (alias: --oj)")
	pFlags.StringVar(&globalOutputOptions.OutputCsv, "outputCsv", "", "指定保存csv文件路径[以.csv结尾] (alias: --oc)")

	// 注册别名 (Hidden flags) 方便用户使用简短命令
	pFlags.StringVar(&globalOutputOptions.OutputJson, "oj", "", "outputJson 简写")
	pFlags.Lookup("oj").Hidden = true
	pFlags.StringVar(&globalOutputOptions.OutputCsv, "oc", "", "outputCsv 简写")
	pFlags.Lookup("oc").Hidden = true

	// 注册子命令
	cmd.AddCommand(NewAirportParseCmd())
	cmd.AddCommand(NewProfilerParseCmd())

	return cmd
}

// readInput 读取扫描输出文本，path 为 "-" 时从 stdin 读取
// 返回文本内容与用于日志的来源名称
func readInput(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), path, nil
}

// reportResult 输出解析结果到终端和可选的文件目标
func reportResult(result *model.ParseResult, output options.OutputOptions) error {
	fmt.Printf("[+] Parsed %d networks in %v\n", result.RecordCount, result.Duration())

	recordsJSON, err := json.MarshalIndent(result.Records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	fmt.Println(string(recordsJSON))

	if !output.Enabled() {
		return nil
	}

	var reporters []reporter.Reporter
	if output.OutputJson != "" {
		reporters = append(reporters, reporter.NewJsonReporter(output.OutputJson))
	}
	if output.OutputCsv != "" {
		reporters = append(reporters, reporter.NewCsvReporter(output.OutputCsv))
	}

	return reporter.NewMultiReporter(reporters...).Report(context.Background(), result)
}
