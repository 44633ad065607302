package options

import (
	"wifiparse/internal/core/model"
)

// ParseOption 定义所有解析指令参数结构体必须实现的接口
type ParseOption interface {
	// Validate 验证参数合法性
	Validate() error

	// Format 返回参数对应的扫描输出格式
	Format() model.ParseFormat
}
