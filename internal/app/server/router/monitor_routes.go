/**
 * 路由:监控管理路由
 * @author: sun977
 * @date: 2026.08.25
 * @description: 监控管理路由，包含系统信息、性能指标、健康检查等需要认证的路由
 * @func: 监控管理相关路由注册
 */
package router

import (
	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
)

// setupMonitorRoutes 设置监控路由
func (r *Router) setupMonitorRoutes(apiGroup *gin.RouterGroup) {
	logger.Info("注册监控路由开始")

	// 监控路由组（需要认证）
	monitorGroup := apiGroup.Group("/monitor")
	if r.authMiddleware != nil {
		monitorGroup.Use(r.authMiddleware.Handler())
	}
	{
		// 系统监控
		monitorGroup.GET("/system", r.monitorHandler.GetSystemInfo)     // 获取主机静态信息
		monitorGroup.GET("/metrics", r.monitorHandler.GetSystemMetrics) // 获取系统实时指标

		// 健康检查
		monitorGroup.GET("/health", r.monitorHandler.GetHealthStatus) // 获取服务健康状态
	}

	logger.Info("监控路由注册完成")
}
