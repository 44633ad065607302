/**
 * 监控处理器
 * @author: sun977
 * @date: 2026.08.25
 * @description: 处理系统信息、系统指标和健康检查HTTP请求
 * @func: 基于gopsutil采集主机信息与实时指标
 */
package monitor

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/model/base"
	"wifiparse/internal/pkg/monitor"
	"wifiparse/internal/pkg/version"
)

// MonitorHandler 监控处理器接口
type MonitorHandler interface {
	// ==================== 系统信息 ====================
	GetSystemInfo(c *gin.Context)    // 获取主机静态信息
	GetSystemMetrics(c *gin.Context) // 获取系统实时指标

	// ==================== 健康检查 ====================
	GetHealthStatus(c *gin.Context) // 获取服务健康状态
}

// monitorHandler 监控处理器实现
type monitorHandler struct {
	startTime time.Time
}

// NewMonitorHandler 创建监控处理器实例
func NewMonitorHandler() MonitorHandler {
	return &monitorHandler{
		startTime: time.Now(),
	}
}

// ==================== 系统信息处理器实现 ====================

// GetSystemInfo 获取主机静态信息
// @Summary 获取系统信息
// @Description 获取服务所在主机的静态信息和运行时信息
// @Tags 监控
// @Produce json
// @Success 200 {object} base.APIResponse "系统信息获取成功"
// @Failure 500 {object} base.APIResponse "内部服务器错误"
// @Router /monitor/system [get]
func (h *monitorHandler) GetSystemInfo(c *gin.Context) {
	hostInfo, err := monitor.GetHostInfo()
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to collect host info",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data: gin.H{
			"host": hostInfo,
			"runtime": gin.H{
				"go_version": runtime.Version(),
				"goroutines": runtime.NumGoroutine(),
			},
			"service": gin.H{
				"version":    version.GetFullVersion(),
				"start_time": h.startTime,
			},
		},
	})
}

// GetSystemMetrics 获取系统实时指标
// @Summary 获取系统指标
// @Description 获取CPU、内存、磁盘和网络的实时使用情况
// @Tags 监控
// @Produce json
// @Success 200 {object} base.APIResponse "系统指标获取成功"
// @Failure 500 {object} base.APIResponse "内部服务器错误"
// @Router /monitor/metrics [get]
func (h *monitorHandler) GetSystemMetrics(c *gin.Context) {
	metrics, err := monitor.GetSystemMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to collect system metrics",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data:    metrics,
	})
}

// ==================== 健康检查处理器实现 ====================

// GetHealthStatus 获取服务健康状态
// @Summary 获取健康状态
// @Description 获取服务自身的健康状态与运行时长
// @Tags 监控
// @Produce json
// @Success 200 {object} base.APIResponse "健康状态获取成功"
// @Router /monitor/health [get]
func (h *monitorHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Success",
		Data: gin.H{
			"status":    "healthy",
			"version":   version.GetVersion(),
			"uptime":    time.Since(h.startTime).String(),
			"timestamp": time.Now(),
		},
	})
}
