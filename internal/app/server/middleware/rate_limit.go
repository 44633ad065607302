/**
 * 限流中间件
 * @author: sun977
 * @date: 2026.08.25
 * @description: 限流中间件，用于控制请求频率
 * @func: 令牌桶/滑动窗口限流、按客户端IP分桶、限流响应头
 */
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"wifiparse/internal/pkg/logger"
	"wifiparse/internal/pkg/utils"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 是否启用限流
	Enabled bool `json:"enabled"`

	// 每秒请求数限制
	RequestsPerSecond int `json:"requests_per_second"`

	// 突发请求数限制
	BurstSize int `json:"burst_size"`

	// 限流窗口大小
	WindowSize time.Duration `json:"window_size"`

	// 限流策略
	Strategy RateLimitStrategy `json:"strategy"`

	// 跳过限流的路径
	SkipPaths []string `json:"skip_paths"`

	// 跳过限流的IP
	SkipIPs []string `json:"skip_ips"`

	// 自定义限流键生成函数
	KeyGenerator func(*gin.Context) string `json:"-"`

	// 限流响应消息
	Message string `json:"message"`

	// 限流响应状态码
	StatusCode int `json:"status_code"`
}

// RateLimitStrategy 限流策略
type RateLimitStrategy string

const (
	// 令牌桶算法
	TokenBucket RateLimitStrategy = "token_bucket"

	// 滑动窗口算法
	SlidingWindow RateLimitStrategy = "sliding_window"
)

// RateLimitMiddleware 限流中间件
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	logger   *logger.LoggerManager
	limiters map[string]RateLimiter
	mutex    sync.RWMutex
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow() bool
	Reset()
	GetRemaining() int
	GetResetTime() time.Time
}

// TokenBucketLimiter 令牌桶限流器
type TokenBucketLimiter struct {
	tokens     int
	maxTokens  int
	refillRate int
	lastRefill time.Time
	mutex      sync.Mutex
}

// SlidingWindowLimiter 滑动窗口限流器
type SlidingWindowLimiter struct {
	requests    []time.Time
	maxRequests int
	windowSize  time.Duration
	mutex       sync.Mutex
}

// NewRateLimitMiddleware 创建限流中间件
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = &RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 100,
			BurstSize:         200,
			WindowSize:        time.Minute,
			Strategy:          TokenBucket,
			Message:           "Rate limit exceeded",
			StatusCode:        http.StatusTooManyRequests,
			SkipPaths: []string{
				"/health",
				"/ping",
			},
		}
	}

	if config.KeyGenerator == nil {
		config.KeyGenerator = defaultKeyGenerator
	}
	if config.WindowSize <= 0 {
		config.WindowSize = time.Minute
	}
	if config.Message == "" {
		config.Message = "Rate limit exceeded"
	}
	if config.StatusCode == 0 {
		config.StatusCode = http.StatusTooManyRequests
	}

	return &RateLimitMiddleware{
		config:   config,
		logger:   logger.LoggerInstance,
		limiters: make(map[string]RateLimiter),
	}
}

// Handler 限流处理器
func (m *RateLimitMiddleware) Handler() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if !m.config.Enabled {
			c.Next()
			return
		}

		// 检查是否跳过限流
		if m.shouldSkipRateLimit(c) {
			c.Next()
			return
		}

		// 生成限流键
		key := m.config.KeyGenerator(c)

		// 获取限流器
		limiter := m.getLimiter(key)

		// 检查是否允许请求
		if !limiter.Allow() {
			m.handleRateLimitExceeded(c, limiter)
			return
		}

		// 设置限流响应头
		m.setRateLimitHeaders(c, limiter)

		c.Next()
	})
}

// shouldSkipRateLimit 检查是否应该跳过限流
func (m *RateLimitMiddleware) shouldSkipRateLimit(c *gin.Context) bool {
	path := c.Request.URL.Path
	ip := utils.GetClientIP(c)

	for _, skipPath := range m.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}

	for _, skipIP := range m.config.SkipIPs {
		if ip == skipIP {
			return true
		}
	}

	return false
}

// getLimiter 获取限流器
func (m *RateLimitMiddleware) getLimiter(key string) RateLimiter {
	m.mutex.RLock()
	limiter, exists := m.limiters[key]
	m.mutex.RUnlock()

	if exists {
		return limiter
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// 双重检查
	if limiter, exists := m.limiters[key]; exists {
		return limiter
	}

	newLimiter := m.createLimiter()
	m.limiters[key] = newLimiter

	return newLimiter
}

// createLimiter 创建限流器
func (m *RateLimitMiddleware) createLimiter() RateLimiter {
	switch m.config.Strategy {
	case SlidingWindow:
		return &SlidingWindowLimiter{
			requests:    make([]time.Time, 0),
			maxRequests: m.config.RequestsPerSecond,
			windowSize:  m.config.WindowSize,
		}
	default:
		return &TokenBucketLimiter{
			tokens:     m.config.BurstSize,
			maxTokens:  m.config.BurstSize,
			refillRate: m.config.RequestsPerSecond,
			lastRefill: time.Now(),
		}
	}
}

// handleRateLimitExceeded 处理限流超出
func (m *RateLimitMiddleware) handleRateLimitExceeded(c *gin.Context, limiter RateLimiter) {
	logger.Warn("Rate limit exceeded")

	m.setRateLimitHeaders(c, limiter)

	c.JSON(m.config.StatusCode, gin.H{
		"error":       "rate_limit_exceeded",
		"message":     m.config.Message,
		"retry_after": limiter.GetResetTime().Unix(),
	})

	c.Abort()
}

// setRateLimitHeaders 设置限流响应头
func (m *RateLimitMiddleware) setRateLimitHeaders(c *gin.Context, limiter RateLimiter) {
	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", m.config.RequestsPerSecond))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limiter.GetRemaining()))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", limiter.GetResetTime().Unix()))
}

// defaultKeyGenerator 默认键生成器，按客户端IP分桶
func defaultKeyGenerator(c *gin.Context) string {
	return utils.GetClientIP(c)
}

// TokenBucketLimiter 实现

// Allow 检查是否允许请求
func (t *TokenBucketLimiter) Allow() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := time.Now()

	// 按经过的时间补充令牌
	elapsed := now.Sub(t.lastRefill)
	tokensToAdd := int(elapsed.Seconds()) * t.refillRate

	if tokensToAdd > 0 {
		t.tokens = min(t.maxTokens, t.tokens+tokensToAdd)
		t.lastRefill = now
	}

	if t.tokens > 0 {
		t.tokens--
		return true
	}

	return false
}

// Reset 重置限流器
func (t *TokenBucketLimiter) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.tokens = t.maxTokens
	t.lastRefill = time.Now()
}

// GetRemaining 获取剩余令牌数
func (t *TokenBucketLimiter) GetRemaining() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.tokens
}

// GetResetTime 获取重置时间
func (t *TokenBucketLimiter) GetResetTime() time.Time {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.tokens >= t.maxTokens {
		return time.Now()
	}

	tokensNeeded := t.maxTokens - t.tokens
	secondsToWait := float64(tokensNeeded) / float64(t.refillRate)

	return time.Now().Add(time.Duration(secondsToWait * float64(time.Second)))
}

// SlidingWindowLimiter 实现

// Allow 检查是否允许请求
func (s *SlidingWindowLimiter) Allow() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	cutoff := now.Add(-s.windowSize)

	// 移除过期的请求
	validRequests := make([]time.Time, 0, len(s.requests))
	for _, req := range s.requests {
		if req.After(cutoff) {
			validRequests = append(validRequests, req)
		}
	}
	s.requests = validRequests

	if len(s.requests) >= s.maxRequests {
		return false
	}

	s.requests = append(s.requests, now)
	return true
}

// Reset 重置限流器
func (s *SlidingWindowLimiter) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.requests = make([]time.Time, 0)
}

// GetRemaining 获取剩余请求数
func (s *SlidingWindowLimiter) GetRemaining() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.maxRequests - len(s.requests)
}

// GetResetTime 获取重置时间
func (s *SlidingWindowLimiter) GetResetTime() time.Time {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.requests) == 0 {
		return time.Now()
	}

	return s.requests[0].Add(s.windowSize)
}

// UpdateConfig 更新限流配置
func (m *RateLimitMiddleware) UpdateConfig(config *RateLimitConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.KeyGenerator == nil {
		config.KeyGenerator = defaultKeyGenerator
	}
	if config.WindowSize <= 0 {
		config.WindowSize = time.Minute
	}
	if config.Message == "" {
		config.Message = "Rate limit exceeded"
	}
	if config.StatusCode == 0 {
		config.StatusCode = http.StatusTooManyRequests
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.config = config

	// 清空现有限流器，强制按新配置重新创建
	m.limiters = make(map[string]RateLimiter)

	logger.Info("Rate limit middleware config updated")

	return nil
}

// GetConfig 获取当前配置
func (m *RateLimitMiddleware) GetConfig() *RateLimitConfig {
	return m.config
}
