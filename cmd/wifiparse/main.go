/*
 * @author: sun977
 * @date: 2026.08.25
 * @description: 主程序入口
 * @func: 启动 Cobra 命令行
 */

package main

func main() {
	Execute()
}
