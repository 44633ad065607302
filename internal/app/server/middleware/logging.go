/**
 * 日志中间件
 * @author: sun977
 * @date: 2026.08.25
 * @description: 日志中间件，用于记录HTTP请求和响应信息
 * @func: 请求追踪ID生成、访问日志记录、慢请求告警
 */
package middleware

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
	"wifiparse/internal/pkg/utils"
)

// LoggingConfig 日志配置
type LoggingConfig struct {
	// 是否启用请求日志
	EnableRequestLog bool `json:"enable_request_log"`

	// 是否启用响应日志
	EnableResponseLog bool `json:"enable_response_log"`

	// 是否记录请求体
	LogRequestBody bool `json:"log_request_body"`

	// 是否记录响应体
	LogResponseBody bool `json:"log_response_body"`

	// 最大请求体大小（字节）
	MaxRequestBodySize int64 `json:"max_request_body_size"`

	// 最大响应体大小（字节）
	MaxResponseBodySize int64 `json:"max_response_body_size"`

	// 跳过日志的路径
	SkipPaths []string `json:"skip_paths"`

	// 慢请求阈值
	SlowRequestThreshold time.Duration `json:"slow_request_threshold"`
}

// LoggingMiddleware 日志中间件
type LoggingMiddleware struct {
	config *LoggingConfig
	logger *logger.LoggerManager
}

// responseWriter 响应写入器包装
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 写入响应数据
func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// NewLoggingMiddleware 创建日志中间件
func NewLoggingMiddleware(config *LoggingConfig) *LoggingMiddleware {
	if config == nil {
		config = &LoggingConfig{
			EnableRequestLog:     true,
			EnableResponseLog:    false,
			LogRequestBody:       false,
			LogResponseBody:      false,
			MaxRequestBodySize:   1024 * 1024, // 1MB
			MaxResponseBodySize:  1024 * 1024, // 1MB
			SlowRequestThreshold: 2 * time.Second,
			SkipPaths: []string{
				"/health",
				"/ping",
			},
		}
	}

	return &LoggingMiddleware{
		config: config,
		logger: logger.LoggerInstance,
	}
}

// Handler 日志处理器
func (m *LoggingMiddleware) Handler() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		// 生成或透传请求追踪ID
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID, _ = utils.GenerateUUID()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		// 检查是否跳过日志
		if m.shouldSkipLogging(path) {
			c.Next()
			return
		}

		// 包装响应写入器以捕获响应体
		var responseBody *bytes.Buffer
		if m.config.EnableResponseLog && m.config.LogResponseBody {
			responseBody = &bytes.Buffer{}
			writer := &responseWriter{
				ResponseWriter: c.Writer,
				body:           responseBody,
			}
			c.Writer = writer
		}

		// 处理请求
		c.Next()

		// 计算处理时间
		duration := time.Since(startTime)

		// 记录访问日志
		if m.config.EnableRequestLog {
			logger.LogAccessRequest(c, startTime, requestID)
		}

		// 记录响应信息
		if m.config.EnableResponseLog {
			m.logResponse(c, requestID, duration, responseBody)
		}

		// 检查慢请求
		if duration > m.config.SlowRequestThreshold {
			logger.Warnf("Slow request detected: %s %s took %v", c.Request.Method, path, duration)
		}
	})
}

// shouldSkipLogging 检查是否应该跳过日志
func (m *LoggingMiddleware) shouldSkipLogging(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

// logResponse 记录响应信息，根据状态码选择日志级别
func (m *LoggingMiddleware) logResponse(c *gin.Context, requestID string, duration time.Duration, responseBody *bytes.Buffer) {
	entry := logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"client_ip":  utils.GetClientIP(c),
		"status":     c.Writer.Status(),
		"size":       c.Writer.Size(),
		"duration":   duration.String(),
	})

	if m.config.LogResponseBody && responseBody != nil {
		bodySize := int64(responseBody.Len())
		if bodySize > 0 && bodySize <= m.config.MaxResponseBodySize {
			entry = entry.WithField("response_body", responseBody.String())
		}
	}

	switch {
	case c.Writer.Status() >= 500:
		entry.Error("HTTP Response")
	case c.Writer.Status() >= 400:
		entry.Warn("HTTP Response")
	default:
		entry.Info("HTTP Response")
	}
}

// UpdateConfig 更新日志配置
func (m *LoggingMiddleware) UpdateConfig(config *LoggingConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.config = config

	logger.Info("Logging middleware config updated")

	return nil
}

// GetConfig 获取当前配置
func (m *LoggingMiddleware) GetConfig() *LoggingConfig {
	return m.config
}
