package setup

import (
	"net/http"

	"wifiparse/internal/app/server/router"
	parsesvc "wifiparse/internal/service/parse"
)

// ParseModule 核心解析模块
type ParseModule struct {
	ParseService parsesvc.ParseService
}

// ServerModule 服务器模块
type ServerModule struct {
	Router     *router.Router
	HTTPServer *http.Server
}
