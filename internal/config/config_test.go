package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigLoader 测试配置加载器
func TestConfigLoader(t *testing.T) {
	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
app:
  name: "wifiparse"
  version: "1.0.0"
  environment: "test"
  debug: true
  timezone: "Asia/Shanghai"

server:
  host: "0.0.0.0"
  port: 8080
  mode: "debug"
  api_version: "v1"
  prefix: "/api"
  read_timeout: 30s
  write_timeout: 30s
  idle_timeout: 60s
  max_header_bytes: 1048576

log:
  level: "debug"
  format: "json"
  output: "stdout"
  file_path: "logs/wifiparse.log"
  max_size: 100
  max_backups: 5
  max_age: 30
  compress: true
  caller: true

parser:
  airport:
    markers: ["BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"]
  profiler:
    security_prefix: "spairport_security_mode_"
    signal_separator: "/"

middleware:
  rate_limit:
    enabled: true
    requests_per_second: 50
    burst_size: 100
    strategy: "sliding_window"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	// 测试配置加载
	loader := NewConfigLoader(tempDir, "WIFIPARSE")
	cfg, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证配置
	if cfg.App.Name != "wifiparse" {
		t.Errorf("Expected app name 'wifiparse', got '%s'", cfg.App.Name)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}

	if len(cfg.Parser.Airport.Markers) != 5 {
		t.Errorf("Expected 5 airport markers, got %d", len(cfg.Parser.Airport.Markers))
	}

	if cfg.Parser.Profiler.SecurityPrefix != "spairport_security_mode_" {
		t.Errorf("Expected profiler security prefix 'spairport_security_mode_', got '%s'", cfg.Parser.Profiler.SecurityPrefix)
	}

	if cfg.Middleware == nil || cfg.Middleware.RateLimit == nil {
		t.Fatal("Expected middleware rate limit config to be loaded")
	}

	if cfg.Middleware.RateLimit.Strategy != "sliding_window" {
		t.Errorf("Expected rate limit strategy 'sliding_window', got '%s'", cfg.Middleware.RateLimit.Strategy)
	}

	if cfg.Middleware.RateLimit.RequestsPerSecond != 50 {
		t.Errorf("Expected 50 requests per second, got %d", cfg.Middleware.RateLimit.RequestsPerSecond)
	}
}

// TestEnvironmentSpecificConfigFile 测试环境特定配置文件优先于默认配置文件
func TestEnvironmentSpecificConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	defaultConfig := `
server:
  port: 8081
`
	devConfig := `
server:
  port: 9091
`

	if err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(defaultConfig), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "config.development.yaml"), []byte(devConfig), 0644); err != nil {
		t.Fatalf("Failed to create development config file: %v", err)
	}

	loader := NewConfigLoader(tempDir, "WIFIPARSE")
	cfg, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 默认环境为 development，应加载 config.development.yaml
	if cfg.Server.Port != 9091 {
		t.Errorf("Expected port 9091 from development config, got %d", cfg.Server.Port)
	}
}

// TestEnvironmentVariableOverride 测试环境变量覆盖
func TestEnvironmentVariableOverride(t *testing.T) {
	// 设置环境变量
	os.Setenv("WIFIPARSE_APP_DEBUG", "true")
	os.Setenv("WIFIPARSE_SERVER_PORT", "9090")
	os.Setenv("WIFIPARSE_PARSER_SECURITY_PREFIX", "custom_prefix_")
	defer func() {
		os.Unsetenv("WIFIPARSE_APP_DEBUG")
		os.Unsetenv("WIFIPARSE_SERVER_PORT")
		os.Unsetenv("WIFIPARSE_PARSER_SECURITY_PREFIX")
	}()

	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
app:
  debug: false
server:
  port: 8080
parser:
  profiler:
    security_prefix: "spairport_security_mode_"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	// 加载配置
	loader := NewConfigLoader(tempDir, "WIFIPARSE")
	cfg, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证环境变量覆盖
	if !cfg.App.Debug {
		t.Error("Expected debug to be true (overridden by env var)")
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected server port 9090 (overridden by env var), got %d", cfg.Server.Port)
	}

	if cfg.Parser.Profiler.SecurityPrefix != "custom_prefix_" {
		t.Errorf("Expected security prefix 'custom_prefix_' (overridden by env var), got '%s'", cfg.Parser.Profiler.SecurityPrefix)
	}
}

// TestConfigValidation 测试配置验证
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid port",
			content: `
server:
  port: -1
`,
		},
		{
			name: "wrong marker count",
			content: `
parser:
  airport:
    markers: ["BSSID", "RSSI"]
`,
		},
		{
			name: "empty marker",
			content: `
parser:
  airport:
    markers: ["BSSID", "RSSI", "", "HT", "SECURITY"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configFile := filepath.Join(tempDir, "config.yaml")

			if err := os.WriteFile(configFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to create config file: %v", err)
			}

			loader := NewConfigLoader(tempDir, "WIFIPARSE")
			if _, err := loader.LoadConfig(); err == nil {
				t.Error("Expected validation error for invalid config")
			}
		})
	}
}

// TestDefaultValues 测试默认值设置
func TestDefaultValues(t *testing.T) {
	// 创建仅包含少量配置的文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
app:
  environment: "test"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	// 加载配置
	loader := NewConfigLoader(tempDir, "WIFIPARSE")
	cfg, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// 验证默认值
	if cfg.App.Name != "wifiparse" {
		t.Errorf("Expected default app name 'wifiparse', got '%s'", cfg.App.Name)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default server port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.Log.Level)
	}

	expectedMarkers := []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"}
	if len(cfg.Parser.Airport.Markers) != len(expectedMarkers) {
		t.Fatalf("Expected %d default markers, got %d", len(expectedMarkers), len(cfg.Parser.Airport.Markers))
	}
	for i, marker := range expectedMarkers {
		if cfg.Parser.Airport.Markers[i] != marker {
			t.Errorf("Expected default marker %d to be '%s', got '%s'", i, marker, cfg.Parser.Airport.Markers[i])
		}
	}

	if cfg.Parser.Profiler.SignalSeparator != "/" {
		t.Errorf("Expected default signal separator '/', got '%s'", cfg.Parser.Profiler.SignalSeparator)
	}
}

// TestLoadConfigFile 测试直接从单个文件加载配置
func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "custom.yaml")

	configContent := `
server:
  port: 9092
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadConfigFile(configFile)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if cfg.Server.Port != 9092 {
		t.Errorf("Expected server port 9092, got %d", cfg.Server.Port)
	}

	// 未指定的段应补默认值
	if cfg.Parser == nil || cfg.Parser.Airport == nil {
		t.Fatal("Expected parser defaults to be set")
	}

	// 不支持的扩展名应报错
	badFile := filepath.Join(tempDir, "custom.txt")
	if err := os.WriteFile(badFile, []byte("port=1"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if _, err := LoadConfigFile(badFile); err == nil {
		t.Error("Expected error for unsupported config file format")
	}
}

// TestConfigWatcher 测试配置文件监听器
func TestConfigWatcher(t *testing.T) {
	// 创建临时配置文件
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	initialConfig := `
app:
  debug: false
server:
  port: 8080
`

	err := os.WriteFile(configFile, []byte(initialConfig), 0644)
	if err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	// 创建配置监听器
	watcher, err := NewConfigWatcher(configFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	// 添加回调函数
	configChanged := false
	watcher.AddCallback(func(oldConfig, newConfig *Config) error {
		configChanged = true
		t.Logf("Config changed: debug %v -> %v", oldConfig.App.Debug, newConfig.App.Debug)
		return nil
	})

	// 启动监听器
	err = watcher.Start()
	if err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Stop()

	// 等待监听器启动
	time.Sleep(100 * time.Millisecond)

	// 修改配置文件
	updatedConfig := `
app:
  debug: true
server:
  port: 8080
`

	err = os.WriteFile(configFile, []byte(updatedConfig), 0644)
	if err != nil {
		t.Fatalf("Failed to update config file: %v", err)
	}

	// 等待文件变更被检测到(重载有1秒去抖延迟)
	time.Sleep(3 * time.Second)

	// 验证配置是否更新
	currentConfig := watcher.GetConfig()
	if !currentConfig.App.Debug {
		t.Error("Expected debug to be true after config update")
	}

	if !configChanged {
		t.Error("Expected config change callback to be called")
	}
}

// TestValidateConfigChange 测试配置变更校验
func TestValidateConfigChange(t *testing.T) {
	oldConfig := &Config{}

	if err := ValidateConfigChange(oldConfig, nil); err == nil {
		t.Error("Expected error for nil new config")
	}

	badPort := &Config{Server: &ServerConfig{Port: 70000}}
	if err := ValidateConfigChange(oldConfig, badPort); err == nil {
		t.Error("Expected error for invalid port")
	}

	badMarkers := &Config{Parser: &ParserConfig{Airport: &AirportParserConfig{Markers: []string{"BSSID"}}}}
	if err := ValidateConfigChange(oldConfig, badMarkers); err == nil {
		t.Error("Expected error for wrong marker count")
	}

	valid := &Config{
		Server: &ServerConfig{Port: 8080},
		Parser: &ParserConfig{Airport: &AirportParserConfig{Markers: []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"}}},
	}
	if err := ValidateConfigChange(oldConfig, valid); err != nil {
		t.Errorf("Expected valid config change, got error: %v", err)
	}
}
