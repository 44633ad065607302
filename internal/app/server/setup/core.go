package setup

import (
	parsesvc "wifiparse/internal/service/parse"
)

// SetupParse 初始化核心解析模块
// 解析服务内部已注册配置好的 airport/profiler 解析器
func SetupParse() *ParseModule {
	return &ParseModule{
		ParseService: parsesvc.NewParseService(),
	}
}
