/*
 * @author: Sun977
 * @date: 2026.08.25
 * @description: Cobra Root Command 定义
 */

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wifiparse/cmd/wifiparse/parse"
	"wifiparse/internal/config"
	"wifiparse/internal/pkg/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wifiparse",
	Short: "wifiparse 无线网络扫描输出解析工具",
	Long: `wifiparse 解析无线网络扫描命令的输出，提取网络记录。
支持 airport -s 的表格输出和 system_profiler SPAirPortDataType -json 的结构化输出，
可以作为 HTTP 服务运行，也可以作为独立的 CLI 解析工具使用。

示例:
  1.启动服务模式
	wifiparse server
	wifiparse server --host 127.0.0.1 --port 9090
  2.解析 airport 表格输出
	wifiparse parse airport -f scan.txt --oj result.json
  3.解析 system_profiler 结构化输出
	wifiparse parse profiler -f profiler.json --oc result.csv
`,
	// PersistentPreRun: 全局初始化逻辑，确保所有子命令都能使用日志
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initCLILogger(cmd)
	},
}

func Execute() {
	// 全局 Panic Recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] wifiparse crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// 全局 Flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "日志级别 (debug, info, warn, error)")

	// 绑定 Viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// 注册子命令
	rootCmd.AddCommand(parse.NewParseCmd())
}

// initConfig 读取配置文件和环境变量
// 配置加载器使用独立的 viper 实例，命令行覆盖通过 WIFIPARSE_ 环境变量传递
func initConfig() {
	// 加载 .env 文件(缺失时跳过)
	if err := config.InitGlobalEnvLoader(); err != nil {
		fmt.Printf("Failed to load env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// 配置加载器按目录搜索配置文件
		configDir := cfgFile
		if info, err := os.Stat(cfgFile); err == nil && !info.IsDir() {
			configDir = filepath.Dir(cfgFile)
		}
		os.Setenv("WIFIPARSE_CONFIG_PATH", configDir)
	} else {
		viper.AddConfigPath("configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if flag := rootCmd.PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		os.Setenv("WIFIPARSE_LOG_LEVEL", flag.Value.String())
	}

	viper.AutomaticEnv() // 读取环境变量

	if err := viper.ReadInConfig(); err == nil {
		// fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// initCLILogger 初始化 CLI 模式下的日志
// 这确保了 CLI 命令也能输出格式化的日志，并且受 --log-level 控制
func initCLILogger(cmd *cobra.Command) {
	// 检查 log-level 标志是否被显式设置
	flag := cmd.Flags().Lookup("log-level")
	level := "fatal" // 默认只输出 Fatal
	if flag != nil && flag.Changed {
		level = flag.Value.String()
	}

	// 配置 pterm
	switch level {
	case "debug":
		pterm.EnableDebugMessages()
	case "info":
		pterm.DisableDebugMessages()
	case "warn", "error", "fatal":
		pterm.DisableDebugMessages()
		// pterm 没有单独的 Info 开关，重定向 Writer 来屏蔽 Info 输出
		pterm.Info = *pterm.Info.WithWriter(io.Discard)
	}

	logConfig := &config.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stdout",
		Caller: false,
	}

	// 初始化日志
	if _, err := logger.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
	}
}
