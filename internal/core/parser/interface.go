/**
 * 解析器接口定义
 * @author: Sun977
 * @date: 2026.08.25
 * @description: 定义扫描输出解析器的通用接口，解耦具体输出格式。
 */

package parser

import (
	"wifiparse/internal/core/model"
)

// Parser 定义了扫描输出解析器的通用接口
type Parser interface {
	// Format 返回该解析器处理的输出格式
	Format() model.ParseFormat

	// Parse 解析一份完整的扫描输出文本
	// 任意一处解析失败则整体失败，不返回部分结果
	Parse(text string) ([]model.NetworkRecord, error)
}
