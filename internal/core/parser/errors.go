package parser

import (
	"fmt"
)

// HeaderNotFoundError 表格输出的表头缺少必需的列标记
type HeaderNotFoundError struct {
	Marker string // 未找到的列标记
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header marker not found: %q", e.Marker)
}

// RowTooShortError 数据行过短，无法按表头列位置切分
type RowTooShortError struct {
	Line     int // 行号，表头为第1行
	Width    int // 该行的字节长度
	Required int // 切分所需的最小字节长度
}

func (e *RowTooShortError) Error() string {
	return fmt.Sprintf("row at line %d too short: %d bytes, need at least %d", e.Line, e.Width, e.Required)
}

// MalformedDocumentError JSON 文档不是预期的结构
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}
