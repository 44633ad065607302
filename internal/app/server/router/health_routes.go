/**
 * 路由:健康检查路由
 * @author: sun977
 * @date: 2026.08.25
 * @description: 健康检查路由，包含健康检查、存活检查、版本查询等不需要认证的路由
 * @func: 健康检查相关路由注册和处理器
 */
package router

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
	"wifiparse/internal/pkg/version"
)

// setupHealthRoutes 设置健康检查路由
func (r *Router) setupHealthRoutes() {
	logger.Info("注册健康检查路由开始")
	// 健康检查路由（不需要认证）
	r.engine.GET("/health", r.handleHealth)
	r.engine.GET("/ping", r.handlePing)
	r.engine.GET("/version", r.handleVersion)
	logger.Info("健康检查路由注册完成")
}

// handleHealth 健康检查处理器
func (r *Router) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": logger.NowFormatted(),
		"service":   "wifiparse",
		"version":   version.GetVersion(),
	})
}

// handlePing Ping处理器
func (r *Router) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": logger.NowFormatted(),
	})
}

// handleVersion 版本信息处理器
func (r *Router) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "wifiparse",
		"version":     version.GetVersion(),
		"api_version": version.APIVersion,
		"build_time":  version.BuildTime,
		"git_commit":  version.GitCommit,
		"go_version":  runtime.Version(),
	})
}
