/**
 * 认证中间件
 * @author: sun977
 * @date: 2026.08.25
 * @description: API Key认证中间件，用于验证调用方身份
 * @func: API Key校验、IP白名单校验、跳过路径
 */
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
	"wifiparse/internal/pkg/utils"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// API Key认证
	APIKey       string `json:"api_key"`
	APIKeyHeader string `json:"api_key_header"`

	// 白名单IP
	WhitelistIPs []string `json:"whitelist_ips"`

	// 认证方式，当前仅支持 "api_key"
	AuthMethod string `json:"auth_method"`

	// 跳过认证的路径
	SkipPaths []string `json:"skip_paths"`
}

// AuthMiddleware 认证中间件
type AuthMiddleware struct {
	config *AuthConfig
	logger *logger.LoggerManager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(config *AuthConfig) *AuthMiddleware {
	if config == nil {
		config = &AuthConfig{
			APIKeyHeader: "X-API-Key",
			AuthMethod:   "api_key",
			SkipPaths: []string{
				"/health",
				"/ping",
				"/version",
			},
		}
	}

	return &AuthMiddleware{
		config: config,
		logger: logger.LoggerInstance,
	}
}

// Handler 认证处理器
func (m *AuthMiddleware) Handler() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		path := c.Request.URL.Path

		// 检查是否跳过认证
		if m.shouldSkipAuth(path) {
			c.Next()
			return
		}

		// 验证IP白名单
		if !m.validateIPWhitelist(utils.GetClientIP(c)) {
			logger.Warn("IP not in whitelist")
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "IP not allowed",
			})
			c.Abort()
			return
		}

		// 根据认证方式进行验证
		var authenticated bool
		var authError string

		switch m.config.AuthMethod {
		case "api_key":
			authenticated, authError = m.validateAPIKey(c)
		default:
			authenticated = false
			authError = "unsupported auth method"
		}

		if !authenticated {
			logger.Warn("Authentication failed")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": authError,
			})
			c.Abort()
			return
		}

		logger.Debug("Authentication successful")
		c.Next()
	})
}

// shouldSkipAuth 检查是否应该跳过认证
func (m *AuthMiddleware) shouldSkipAuth(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// validateIPWhitelist 验证IP白名单
// 白名单为空时允许所有IP
func (m *AuthMiddleware) validateIPWhitelist(clientIP string) bool {
	if len(m.config.WhitelistIPs) == 0 {
		return true
	}

	for _, allowedIP := range m.config.WhitelistIPs {
		if clientIP == allowedIP {
			return true
		}
	}

	return false
}

// validateAPIKey 验证API Key
func (m *AuthMiddleware) validateAPIKey(c *gin.Context) (bool, string) {
	if m.config.APIKey == "" {
		return false, "api key not configured"
	}

	apiKey := c.GetHeader(m.config.APIKeyHeader)
	if apiKey == "" {
		return false, "missing api key"
	}

	if apiKey != m.config.APIKey {
		return false, "invalid api key"
	}

	return true, ""
}

// UpdateConfig 更新认证配置
func (m *AuthMiddleware) UpdateConfig(config *AuthConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.config = config

	logger.Info("Auth middleware config updated")

	return nil
}

// GetConfig 获取当前配置
func (m *AuthMiddleware) GetConfig() *AuthConfig {
	return m.config
}
