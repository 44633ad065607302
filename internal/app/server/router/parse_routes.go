/**
 * 路由:解析路由
 * @author: sun977
 * @date: 2026.08.25
 * @description: 解析路由，包含扫描输出解析与格式查询等需要认证的路由
 * @func: 解析相关路由注册
 */
package router

import (
	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
)

// setupParseRoutes 设置解析路由
func (r *Router) setupParseRoutes(apiGroup *gin.RouterGroup) {
	logger.Info("注册解析路由开始")

	// 解析路由组（需要认证）
	parseGroup := apiGroup.Group("/parse")
	if r.authMiddleware != nil {
		parseGroup.Use(r.authMiddleware.Handler())
	}
	{
		parseGroup.POST("", r.parseHandler.ParseText)          // 解析扫描输出文本
		parseGroup.GET("/formats", r.parseHandler.ListFormats) // 查询支持的扫描输出格式
	}

	logger.Info("解析路由注册完成")
}
