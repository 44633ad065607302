/**
 * WifiParse配置管理
 * @author: sun977
 * @date: 2026.08.25
 * @description: 配置管理，负责加载和管理所有配置
 * @func: 配置结构定义、加载、默认值与校验
 */
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config WifiParse配置
type Config struct {
	// 应用配置
	App *AppConfig `yaml:"app" mapstructure:"app"`

	// 服务器配置
	Server *ServerConfig `yaml:"server" mapstructure:"server"`

	// 日志配置
	Log *LogConfig `yaml:"log" mapstructure:"log"`

	// 解析器配置
	Parser *ParserConfig `yaml:"parser" mapstructure:"parser"`

	// 中间件配置
	Middleware *MiddlewareConfig `yaml:"middleware" mapstructure:"middleware"`

	// 监控配置
	Monitor *MonitorConfig `yaml:"monitor" mapstructure:"monitor"`

	// 安全配置
	Security *SecurityConfig `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`               // 应用名称
	Version     string `yaml:"version" mapstructure:"version"`         // 应用版本
	Environment string `yaml:"environment" mapstructure:"environment"` // 运行环境
	Debug       bool   `yaml:"debug" mapstructure:"debug"`             // 调试模式
	Timezone    string `yaml:"timezone" mapstructure:"timezone"`       // 时区
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`                         // 监听地址
	Port           int           `yaml:"port" mapstructure:"port"`                         // 监听端口
	Mode           string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式 (debug/release/test)
	APIVersion     string        `yaml:"api_version" mapstructure:"api_version"`           // API版本
	Prefix         string        `yaml:"prefix" mapstructure:"prefix"`                     // 路由前缀
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大头部字节数
	TLS            TLSConfig     `yaml:"tls" mapstructure:"tls"`                           // TLS配置
}

// TLSConfig TLS配置
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`     // 是否启用TLS
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"` // 证书文件路径
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`   // 私钥文件路径
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别 (debug/info/warn/error)
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式 (json/text)
	Output     string `yaml:"output" mapstructure:"output"`           // 日志输出 (stdout/stderr/file)
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 最大文件大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 最大备份数
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 最大保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// ParserConfig 解析器配置
type ParserConfig struct {
	// 表格格式解析配置
	Airport *AirportParserConfig `yaml:"airport" mapstructure:"airport"`

	// 结构化格式解析配置
	Profiler *ProfilerParserConfig `yaml:"profiler" mapstructure:"profiler"`
}

// AirportParserConfig 表格格式（airport工具输出）解析配置
type AirportParserConfig struct {
	// 表头列标记，从左到右依次为：MAC地址、信号、信道、信道边界、安全模式
	// 可替换为本地化后的标签，顺序固定
	Markers []string `yaml:"markers" mapstructure:"markers"`
}

// ProfilerParserConfig 结构化格式（system_profiler JSON输出）解析配置
type ProfilerParserConfig struct {
	SecurityPrefix  string `yaml:"security_prefix" mapstructure:"security_prefix"`   // 安全模式字段的已知前缀
	SignalSeparator string `yaml:"signal_separator" mapstructure:"signal_separator"` // 信号/噪声字段的分隔符
}

// MiddlewareConfig 中间件配置
type MiddlewareConfig struct {
	// 认证中间件配置
	Auth *AuthConfig `yaml:"auth" json:"auth" mapstructure:"auth"`

	// 日志中间件配置
	Logging *LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// CORS中间件配置
	CORS *CORSConfig `yaml:"cors" json:"cors" mapstructure:"cors"`

	// 限流中间件配置
	RateLimit *RateLimitConfig `yaml:"rate_limit" json:"rate_limit" mapstructure:"rate_limit"`
}

// AuthConfig 认证中间件配置
type AuthConfig struct {
	Enabled      bool     `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	AuthMethod   string   `yaml:"auth_method" json:"auth_method" mapstructure:"auth_method"`
	WhitelistIPs []string `yaml:"whitelist_ips" json:"whitelist_ips" mapstructure:"whitelist_ips"`
	SkipPaths    []string `yaml:"skip_paths" json:"skip_paths" mapstructure:"skip_paths"`
}

// LoggingConfig 日志中间件配置
type LoggingConfig struct {
	EnableRequestLog     bool          `yaml:"enable_request_log" json:"enable_request_log" mapstructure:"enable_request_log"`
	EnableResponseLog    bool          `yaml:"enable_response_log" json:"enable_response_log" mapstructure:"enable_response_log"`
	LogRequestBody       bool          `yaml:"log_request_body" json:"log_request_body" mapstructure:"log_request_body"`
	LogResponseBody      bool          `yaml:"log_response_body" json:"log_response_body" mapstructure:"log_response_body"`
	SlowRequestThreshold time.Duration `yaml:"slow_request_threshold" json:"slow_request_threshold" mapstructure:"slow_request_threshold"`
	MaxBodySize          int64         `yaml:"max_body_size" json:"max_body_size" mapstructure:"max_body_size"`
	SkipPaths            []string      `yaml:"skip_paths" json:"skip_paths" mapstructure:"skip_paths"`
}

// CORSConfig CORS中间件配置
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	AllowAllOrigins  bool     `yaml:"allow_all_origins" json:"allow_all_origins" mapstructure:"allow_all_origins"`
	AllowOrigins     []string `yaml:"allow_origins" json:"allow_origins" mapstructure:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods" json:"allow_methods" mapstructure:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" json:"allow_headers" mapstructure:"allow_headers"`
	ExposeHeaders    []string `yaml:"expose_headers" json:"expose_headers" mapstructure:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" json:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" json:"max_age" mapstructure:"max_age"`
}

// RateLimitConfig 限流中间件配置
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	RequestsPerSecond int      `yaml:"requests_per_second" json:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int      `yaml:"burst_size" json:"burst_size" mapstructure:"burst_size"`
	Strategy          string   `yaml:"strategy" json:"strategy" mapstructure:"strategy"`
	SkipPaths         []string `yaml:"skip_paths" json:"skip_paths" mapstructure:"skip_paths"`
}

// MonitorConfig 监控配置
type MonitorConfig struct {
	// 是否启用监控接口
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`

	// 指标采集间隔
	Interval time.Duration `yaml:"interval" json:"interval" mapstructure:"interval"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	// API密钥
	APIKey string `yaml:"api_key" json:"api_key" mapstructure:"api_key" env:"WIFIPARSE_API_KEY"`

	// IP白名单
	IPWhitelist []string `yaml:"ip_whitelist" json:"ip_whitelist" mapstructure:"ip_whitelist"`

	// 是否启用IP白名单
	EnableIPWhitelist bool `yaml:"enable_ip_whitelist" json:"enable_ip_whitelist" mapstructure:"enable_ip_whitelist"`
}

// LoadConfig 加载配置
func LoadConfig(configPath ...string) (*Config, error) {
	var path string
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	}

	loader := NewConfigLoader(path, "WIFIPARSE")
	config, err := loader.LoadConfig()
	if err != nil {
		return nil, err
	}

	// 设置全局配置
	globalConfig = config
	loadedConfigFile = loader.GetConfigPath()
	return config, nil
}

// LoadConfigFile 直接从单个配置文件加载（不经过viper）
// 按扩展名选择yaml或json解析，加载后补默认值并校验
func LoadConfigFile(configPath string) (*Config, error) {
	config := &Config{}
	if err := loadConfigFile(config, configPath); err != nil {
		return nil, err
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadConfigFile 从配置文件加载
func loadConfigFile(cfg *Config, configPath string) error {
	// 检查文件是否存在
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// 根据文件扩展名选择解析方式
	ext := filepath.Ext(configPath)
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(config *Config) {
	// 应用默认配置
	if config.App == nil {
		config.App = &AppConfig{}
	}

	if config.App.Name == "" {
		config.App.Name = "wifiparse"
	}

	if config.App.Environment == "" {
		config.App.Environment = "development"
	}

	if config.App.Timezone == "" {
		config.App.Timezone = "UTC"
	}

	// 服务器默认配置
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}

	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}

	if config.Server.APIVersion == "" {
		config.Server.APIVersion = "v1"
	}

	if config.Server.Prefix == "" {
		config.Server.Prefix = "/api"
	}

	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30 * time.Second
	}

	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}

	if config.Server.IdleTimeout == 0 {
		config.Server.IdleTimeout = 60 * time.Second
	}

	if config.Server.MaxHeaderBytes == 0 {
		config.Server.MaxHeaderBytes = 1 << 20 // 1MB
	}

	// 日志默认配置
	if config.Log == nil {
		config.Log = &LogConfig{}
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if config.Log.Output == "" {
		config.Log.Output = "stdout"
	}

	if config.Log.FilePath == "" {
		config.Log.FilePath = "logs/wifiparse.log"
	}

	if config.Log.MaxSize == 0 {
		config.Log.MaxSize = 100
	}

	if config.Log.MaxBackups == 0 {
		config.Log.MaxBackups = 10
	}

	if config.Log.MaxAge == 0 {
		config.Log.MaxAge = 30
	}

	// 解析器默认配置
	if config.Parser == nil {
		config.Parser = &ParserConfig{}
	}

	if config.Parser.Airport == nil {
		config.Parser.Airport = &AirportParserConfig{}
	}

	if len(config.Parser.Airport.Markers) == 0 {
		config.Parser.Airport.Markers = []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"}
	}

	if config.Parser.Profiler == nil {
		config.Parser.Profiler = &ProfilerParserConfig{}
	}

	if config.Parser.Profiler.SecurityPrefix == "" {
		config.Parser.Profiler.SecurityPrefix = "spairport_security_mode_"
	}

	if config.Parser.Profiler.SignalSeparator == "" {
		config.Parser.Profiler.SignalSeparator = "/"
	}

	// 监控默认配置
	if config.Monitor == nil {
		config.Monitor = &MonitorConfig{Enabled: true}
	}

	if config.Monitor.Interval == 0 {
		config.Monitor.Interval = 30 * time.Second
	}

	// 安全默认配置
	if config.Security == nil {
		config.Security = &SecurityConfig{}
	}
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// 表头标记必须恰好5个且非空（MAC、信号、信道、边界、安全）
	if len(config.Parser.Airport.Markers) != 5 {
		return fmt.Errorf("airport parser requires exactly 5 column markers, got %d", len(config.Parser.Airport.Markers))
	}

	for i, marker := range config.Parser.Airport.Markers {
		if marker == "" {
			return fmt.Errorf("airport parser marker %d is empty", i)
		}
	}

	// 文件输出时确保日志目录存在
	if config.Log.Output == "file" {
		if err := ensureDir(filepath.Dir(config.Log.FilePath)); err != nil {
			return fmt.Errorf("failed to ensure log directory: %w", err)
		}
	}

	return nil
}

// ensureDir 确保目录存在
func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	return os.MkdirAll(absDir, 0755)
}

// GetConfig 获取配置（单例模式）
var globalConfig *Config

// loadedConfigFile 记录最近一次成功加载的配置文件路径(纯环境变量启动时为空)
var loadedConfigFile string

// ConfigFileUsed 返回最近一次成功加载的配置文件路径
func ConfigFileUsed() string {
	return loadedConfigFile
}

func GetConfig() *Config {
	if globalConfig == nil {
		var err error
		globalConfig, err = LoadConfig("")
		if err != nil {
			// 配置文件缺失时退回默认配置，保证纯解析场景可用
			globalConfig = &Config{}
			setDefaults(globalConfig)
		}
	}
	return globalConfig
}

// SetConfig 设置全局配置（主要用于测试）
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// ReloadConfig 重新加载配置
func ReloadConfig() error {
	newConfig, err := LoadConfig("")
	if err != nil {
		return err
	}

	globalConfig = newConfig
	return nil
}
