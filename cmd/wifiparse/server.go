/*
 * @author: Sun977
 * @date: 2026.08.25
 * @description: Server 模式子命令 (HTTP API Mode)
 */

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wifiparse/internal/app/server"

	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 HTTP 解析服务",
	Long: `以守护进程方式启动 wifiparse，通过 HTTP API 接收扫描输出并返回解析结果。

可以通过命令行参数指定监听地址和端口，也可以通过配置文件指定。
命令行参数优先级高于配置文件。

示例:
  wifiparse server --host 127.0.0.1 --port 9090`,
	Run: func(cmd *cobra.Command, args []string) {
		// 配置加载器读取 WIFIPARSE_ 前缀环境变量，命令行覆盖通过环境变量传递
		if serverHost != "" {
			os.Setenv("WIFIPARSE_SERVER_HOST", serverHost)
		}
		if serverPort != 0 {
			os.Setenv("WIFIPARSE_SERVER_PORT", strconv.Itoa(serverPort))
		}
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 定义 Flags
	serverCmd.Flags().StringVar(&serverHost, "host", "", "监听地址 (e.g. 0.0.0.0)")
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "监听端口 (e.g. 8080)")
}

// runServer 启动应用并等待中断信号
func runServer() {
	// 创建应用实例
	app, err := server.NewApp()
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// 启动应用
	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down wifiparse server...")

	// 给服务器5秒钟的时间来完成现有请求
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 停止应用
	if err := app.Stop(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("wifiparse exiting")
}
