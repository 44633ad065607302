package setup

import (
	"fmt"
	"net/http"
	"time"

	"wifiparse/internal/app/server/middleware"
	"wifiparse/internal/app/server/router"
	"wifiparse/internal/config"
	parsesvc "wifiparse/internal/service/parse"
)

// SetupServer 初始化服务器模块
func SetupServer(cfg *config.Config, parseService parsesvc.ParseService) *ServerModule {
	r := router.NewRouter(BuildRouterConfig(cfg), parseService)

	// 初始化HTTP服务器
	httpServer := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        r.GetEngine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return &ServerModule{
		Router:     r,
		HTTPServer: httpServer,
	}
}

// BuildRouterConfig 从全局配置构建路由器配置
// 配置热更新时也用它重建路由器配置
func BuildRouterConfig(cfg *config.Config) *router.RouterConfig {
	return &router.RouterConfig{
		Debug:            cfg.App.Debug,
		APIVersion:       cfg.Server.APIVersion,
		Prefix:           cfg.Server.Prefix,
		EnableMiddleware: true,
		MiddlewareConfig: createMiddlewareConfig(cfg),
	}
}

// createMiddlewareConfig 创建中间件配置
// 将全局配置转换为中间件特定的配置结构体
func createMiddlewareConfig(cfg *config.Config) *router.MiddlewareConfig {
	middlewareConfig := &router.MiddlewareConfig{}

	// 检查并设置认证中间件配置
	// 未启用认证时保持为nil，路由器不会挂载认证中间件
	if cfg.Middleware != nil && cfg.Middleware.Auth != nil && cfg.Middleware.Auth.Enabled {
		apiKey := ""
		if cfg.Security != nil {
			apiKey = cfg.Security.APIKey
		}
		whitelistIPs := cfg.Middleware.Auth.WhitelistIPs
		if len(whitelistIPs) == 0 && cfg.Security != nil && cfg.Security.EnableIPWhitelist {
			whitelistIPs = cfg.Security.IPWhitelist
		}
		middlewareConfig.Auth = &middleware.AuthConfig{
			APIKey:       apiKey,
			APIKeyHeader: "X-API-Key",
			AuthMethod:   cfg.Middleware.Auth.AuthMethod,
			WhitelistIPs: whitelistIPs,
			SkipPaths:    cfg.Middleware.Auth.SkipPaths,
		}
	}

	// 检查并设置日志中间件配置
	if cfg.Middleware != nil && cfg.Middleware.Logging != nil {
		middlewareConfig.Logging = &middleware.LoggingConfig{
			EnableRequestLog:     cfg.Middleware.Logging.EnableRequestLog,
			EnableResponseLog:    cfg.Middleware.Logging.EnableResponseLog,
			LogRequestBody:       cfg.Middleware.Logging.LogRequestBody,
			LogResponseBody:      cfg.Middleware.Logging.LogResponseBody,
			SlowRequestThreshold: cfg.Middleware.Logging.SlowRequestThreshold,
			MaxRequestBodySize:   cfg.Middleware.Logging.MaxBodySize,
			MaxResponseBodySize:  cfg.Middleware.Logging.MaxBodySize,
			SkipPaths:            cfg.Middleware.Logging.SkipPaths,
		}
	} else {
		// 默认日志配置
		middlewareConfig.Logging = &middleware.LoggingConfig{
			EnableRequestLog:     true,
			EnableResponseLog:    false,
			LogRequestBody:       false,
			LogResponseBody:      false,
			SlowRequestThreshold: 2 * time.Second,
			MaxRequestBodySize:   1024 * 1024, // 1MB
			MaxResponseBodySize:  1024 * 1024, // 1MB
			SkipPaths:            []string{"/health", "/ping"},
		}
	}

	// 检查并设置CORS中间件配置
	if cfg.Middleware != nil && cfg.Middleware.CORS != nil {
		middlewareConfig.CORS = &middleware.CORSConfig{
			Enabled:          cfg.Middleware.CORS.Enabled,
			AllowAllOrigins:  cfg.Middleware.CORS.AllowAllOrigins,
			AllowOrigins:     cfg.Middleware.CORS.AllowOrigins,
			AllowMethods:     cfg.Middleware.CORS.AllowMethods,
			AllowHeaders:     cfg.Middleware.CORS.AllowHeaders,
			ExposeHeaders:    cfg.Middleware.CORS.ExposeHeaders,
			AllowCredentials: cfg.Middleware.CORS.AllowCredentials,
			MaxAge:           time.Duration(cfg.Middleware.CORS.MaxAge) * time.Second,
		}
	} else {
		// 默认CORS配置
		middlewareConfig.CORS = &middleware.CORSConfig{
			Enabled:         true,
			AllowAllOrigins: true,
			AllowOrigins:    []string{"*"},
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-API-Key", "X-Request-ID"},
			MaxAge:          12 * time.Hour,
		}
	}

	// 检查并设置限流中间件配置
	if cfg.Middleware != nil && cfg.Middleware.RateLimit != nil {
		middlewareConfig.RateLimit = &middleware.RateLimitConfig{
			Enabled:           cfg.Middleware.RateLimit.Enabled,
			RequestsPerSecond: cfg.Middleware.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.Middleware.RateLimit.BurstSize,
			Strategy:          middleware.RateLimitStrategy(cfg.Middleware.RateLimit.Strategy),
			SkipPaths:         cfg.Middleware.RateLimit.SkipPaths,
		}
	} else {
		// 默认限流配置
		middlewareConfig.RateLimit = &middleware.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 100,
			BurstSize:         200,
		}
	}

	return middlewareConfig
}
