package parser

import (
	"strings"
)

// StripSecurityPrefix 去掉安全模式的机器前缀
// 输入已经没有前缀时原样返回，重复调用结果不变
func StripSecurityPrefix(mode, prefix string) string {
	return strings.TrimPrefix(mode, prefix)
}

// ExtractSignalLevel 从"信号 / 噪声"文本中提取信号强度
// 含分隔符时取分隔符前的部分，否则取整体，两种情况都去掉首尾空白
func ExtractSignalLevel(raw, separator string) string {
	if separator == "" {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(strings.SplitN(raw, separator, 2)[0])
}
