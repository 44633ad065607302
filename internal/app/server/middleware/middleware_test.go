package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupMiddlewareRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handler)
	router.GET("/api/v1/parse/formats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return router
}

func performGet(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestAuthMiddleware_APIKey 测试API Key认证
func TestAuthMiddleware_APIKey(t *testing.T) {
	auth := NewAuthMiddleware(&AuthConfig{
		APIKey:       "test-secret",
		APIKeyHeader: "X-API-Key",
		AuthMethod:   "api_key",
	})
	router := setupMiddlewareRouter(auth.Handler())

	// 缺少API Key
	w := performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without api key, got %d", w.Code)
	}

	// 错误的API Key
	w = performGet(router, "/api/v1/parse/formats", map[string]string{"X-API-Key": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong api key, got %d", w.Code)
	}

	// 正确的API Key
	w = performGet(router, "/api/v1/parse/formats", map[string]string{"X-API-Key": "test-secret"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with valid api key, got %d", w.Code)
	}
}

// TestAuthMiddleware_SkipPaths 测试跳过认证的路径
func TestAuthMiddleware_SkipPaths(t *testing.T) {
	// 默认配置未设置API Key，除跳过路径外全部拒绝
	auth := NewAuthMiddleware(nil)
	router := setupMiddlewareRouter(auth.Handler())

	w := performGet(router, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected skip path to bypass auth, got %d", w.Code)
	}

	w = performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 when api key not configured, got %d", w.Code)
	}
}

// TestAuthMiddleware_IPWhitelist 测试IP白名单
func TestAuthMiddleware_IPWhitelist(t *testing.T) {
	auth := NewAuthMiddleware(&AuthConfig{
		APIKey:       "test-secret",
		APIKeyHeader: "X-API-Key",
		AuthMethod:   "api_key",
		WhitelistIPs: []string{"10.1.1.1"},
	})
	router := setupMiddlewareRouter(auth.Handler())

	// 白名单外的IP
	w := performGet(router, "/api/v1/parse/formats", map[string]string{
		"X-API-Key":       "test-secret",
		"X-Forwarded-For": "10.2.2.2",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-whitelisted ip, got %d", w.Code)
	}

	// 白名单内的IP
	w = performGet(router, "/api/v1/parse/formats", map[string]string{
		"X-API-Key":       "test-secret",
		"X-Forwarded-For": "10.1.1.1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for whitelisted ip, got %d", w.Code)
	}
}

// TestRateLimitMiddleware_TokenBucket 测试令牌桶限流
func TestRateLimitMiddleware_TokenBucket(t *testing.T) {
	limit := NewRateLimitMiddleware(&RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstSize:         2,
		Strategy:          TokenBucket,
	})
	router := setupMiddlewareRouter(limit.Handler())

	// 突发额度内的请求放行
	for i := 0; i < 2; i++ {
		w := performGet(router, "/api/v1/parse/formats", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected request %d to pass, got %d", i+1, w.Code)
		}
	}

	// 超出突发额度返回429
	w := performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected X-RateLimit-Limit header on rejected request")
	}

	// 不同IP独立分桶
	w = performGet(router, "/api/v1/parse/formats", map[string]string{"X-Forwarded-For": "10.9.9.9"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected fresh bucket for new ip, got %d", w.Code)
	}
}

// TestRateLimitMiddleware_SlidingWindow 测试滑动窗口限流
func TestRateLimitMiddleware_SlidingWindow(t *testing.T) {
	limit := NewRateLimitMiddleware(&RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 2,
		WindowSize:        time.Minute,
		Strategy:          SlidingWindow,
	})
	router := setupMiddlewareRouter(limit.Handler())

	for i := 0; i < 2; i++ {
		w := performGet(router, "/api/v1/parse/formats", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected request %d to pass, got %d", i+1, w.Code)
		}
	}

	w := performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}
}

// TestRateLimitMiddleware_SkipPaths 测试跳过限流的路径
func TestRateLimitMiddleware_SkipPaths(t *testing.T) {
	limit := NewRateLimitMiddleware(&RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstSize:         1,
		Strategy:          TokenBucket,
		SkipPaths:         []string{"/health"},
	})
	router := setupMiddlewareRouter(limit.Handler())

	// 耗尽限流额度
	performGet(router, "/api/v1/parse/formats", nil)
	w := performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}

	// 跳过路径不受限流影响
	for i := 0; i < 3; i++ {
		w := performGet(router, "/health", nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected skip path to bypass rate limit, got %d", w.Code)
		}
	}
}

// TestRateLimitMiddleware_Disabled 测试禁用限流
func TestRateLimitMiddleware_Disabled(t *testing.T) {
	limit := NewRateLimitMiddleware(&RateLimitConfig{
		Enabled:           false,
		RequestsPerSecond: 1,
		BurstSize:         1,
	})
	router := setupMiddlewareRouter(limit.Handler())

	for i := 0; i < 5; i++ {
		w := performGet(router, "/api/v1/parse/formats", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected all requests to pass when disabled, got %d", w.Code)
		}
	}
}

// TestCORSMiddleware_Preflight 测试预检请求处理
func TestCORSMiddleware_Preflight(t *testing.T) {
	cors := NewCORSMiddleware(nil) // 默认允许所有源
	router := setupMiddlewareRouter(cors.Handler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/parse/formats", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected allow origin '*', got '%s'", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Max-Age") != "43200" {
		t.Errorf("Expected max age '43200', got '%s'", w.Header().Get("Access-Control-Max-Age"))
	}

	// 缺少请求方法的预检被拒绝
	req = httptest.NewRequest(http.MethodOptions, "/api/v1/parse/formats", nil)
	req.Header.Set("Origin", "http://example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 without request method, got %d", w.Code)
	}
}

// TestCORSMiddleware_RestrictedOrigins 测试源白名单与通配符匹配
func TestCORSMiddleware_RestrictedOrigins(t *testing.T) {
	cors := NewCORSMiddleware(&CORSConfig{
		Enabled:      true,
		AllowOrigins: []string{"https://console.example.com", "*.trusted.com"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       time.Hour,
	})
	router := setupMiddlewareRouter(cors.Handler())

	tests := []struct {
		name     string
		origin   string
		wantCode int
	}{
		{name: "allowed origin", origin: "https://console.example.com", wantCode: http.StatusNoContent},
		{name: "wildcard subdomain", origin: "https://app.trusted.com", wantCode: http.StatusNoContent},
		{name: "denied origin", origin: "https://evil.com", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/parse/formats", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", "GET")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("Expected status %d, got %d", tt.wantCode, w.Code)
			}
		})
	}

	// 普通请求回显被允许的源
	w := performGet(router, "/api/v1/parse/formats", map[string]string{"Origin": "https://console.example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://console.example.com" {
		t.Errorf("Expected origin to be echoed, got '%s'", w.Header().Get("Access-Control-Allow-Origin"))
	}

	// 不允许的源不带CORS头但请求本身放行
	w = performGet(router, "/api/v1/parse/formats", map[string]string{"Origin": "https://evil.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("Expected no allow origin header, got '%s'", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

// TestLoggingMiddleware_RequestID 测试请求追踪ID生成与透传
func TestLoggingMiddleware_RequestID(t *testing.T) {
	logging := NewLoggingMiddleware(nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(logging.Handler())
	router.GET("/api/v1/parse/formats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})

	// 自动生成请求ID
	w := performGet(router, "/api/v1/parse/formats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected generated X-Request-ID header")
	}

	// 透传已有请求ID
	w = performGet(router, "/api/v1/parse/formats", map[string]string{"X-Request-ID": "req-12345"})
	if w.Header().Get("X-Request-ID") != "req-12345" {
		t.Errorf("Expected X-Request-ID 'req-12345' to be preserved, got '%s'", w.Header().Get("X-Request-ID"))
	}
}
