package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader 配置加载器
type ConfigLoader struct {
	configPath string
	envPrefix  string
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
func NewConfigLoader(configPath, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = "WIFIPARSE"
	}

	return &ConfigLoader{
		configPath: configPath,
		envPrefix:  envPrefix,
		viper:      viper.New(),
	}
}

// LoadConfig 加载配置
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	// 设置配置文件类型
	cl.viper.SetConfigType("yaml")

	// 设置环境变量前缀
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.AutomaticEnv()
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 绑定环境变量
	cl.bindEnvVars()

	// 设置默认值
	cl.setDefaults()

	// 加载配置文件
	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// 解析配置
	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 补齐缺失段的默认值并校验
	setDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadConfigFile 加载配置文件
func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configPath == "" {
		// 尝试从环境变量获取配置文件路径
		if envPath := os.Getenv("WIFIPARSE_CONFIG_PATH"); envPath != "" {
			cl.configPath = envPath
		} else {
			// 默认配置文件路径
			cl.configPath = "./configs"
		}
	}

	// 获取环境
	env := cl.getEnvironment()

	// 设置配置文件搜索路径
	cl.viper.AddConfigPath(cl.configPath)
	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")

	// 尝试加载环境特定的配置文件
	configName := fmt.Sprintf("config.%s", env)
	cl.viper.SetConfigName(configName)

	if err := cl.viper.ReadInConfig(); err != nil {
		// 环境特定配置文件不存在时回退到默认配置文件
		cl.viper.SetConfigName("config")
		if err := cl.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	return nil
}

// getEnvironment 获取运行环境
func (cl *ConfigLoader) getEnvironment() string {
	env := os.Getenv("WIFIPARSE_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "development"
	}
	return env
}

// bindEnvVars 绑定环境变量
func (cl *ConfigLoader) bindEnvVars() {
	// App配置
	cl.viper.BindEnv("app.name", "WIFIPARSE_APP_NAME")
	cl.viper.BindEnv("app.environment", "WIFIPARSE_APP_ENVIRONMENT")
	cl.viper.BindEnv("app.debug", "WIFIPARSE_APP_DEBUG")

	// Server配置
	cl.viper.BindEnv("server.host", "WIFIPARSE_SERVER_HOST")
	cl.viper.BindEnv("server.port", "WIFIPARSE_SERVER_PORT")
	cl.viper.BindEnv("server.mode", "WIFIPARSE_SERVER_MODE")

	// 日志配置
	cl.viper.BindEnv("log.level", "WIFIPARSE_LOG_LEVEL")
	cl.viper.BindEnv("log.format", "WIFIPARSE_LOG_FORMAT")
	cl.viper.BindEnv("log.file_path", "WIFIPARSE_LOG_FILE_PATH")

	// 解析器配置
	cl.viper.BindEnv("parser.profiler.security_prefix", "WIFIPARSE_PARSER_SECURITY_PREFIX")
	cl.viper.BindEnv("parser.profiler.signal_separator", "WIFIPARSE_PARSER_SIGNAL_SEPARATOR")

	// 安全配置
	cl.viper.BindEnv("security.api_key", "WIFIPARSE_API_KEY")
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	// App默认值
	cl.viper.SetDefault("app.name", "wifiparse")
	cl.viper.SetDefault("app.environment", "development")
	cl.viper.SetDefault("app.debug", false)
	cl.viper.SetDefault("app.timezone", "UTC")

	// Server默认值
	cl.viper.SetDefault("server.host", "0.0.0.0")
	cl.viper.SetDefault("server.port", 8080)
	cl.viper.SetDefault("server.mode", "release")
	cl.viper.SetDefault("server.api_version", "v1")
	cl.viper.SetDefault("server.prefix", "/api")
	cl.viper.SetDefault("server.read_timeout", "30s")
	cl.viper.SetDefault("server.write_timeout", "30s")
	cl.viper.SetDefault("server.idle_timeout", "60s")
	cl.viper.SetDefault("server.max_header_bytes", 1048576)

	// 日志默认值
	cl.viper.SetDefault("log.level", "info")
	cl.viper.SetDefault("log.format", "text")
	cl.viper.SetDefault("log.output", "stdout")
	cl.viper.SetDefault("log.file_path", "logs/wifiparse.log")
	cl.viper.SetDefault("log.max_size", 100)
	cl.viper.SetDefault("log.max_backups", 10)
	cl.viper.SetDefault("log.max_age", 30)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", false)

	// 解析器默认值
	cl.viper.SetDefault("parser.airport.markers", []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"})
	cl.viper.SetDefault("parser.profiler.security_prefix", "spairport_security_mode_")
	cl.viper.SetDefault("parser.profiler.signal_separator", "/")

	// 监控默认值
	cl.viper.SetDefault("monitor.enabled", true)
	cl.viper.SetDefault("monitor.interval", "30s")
}

// GetConfigPath 获取配置文件路径
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}

// LoadConfigFromFile 从指定文件加载配置
func LoadConfigFromFile(configFile string) (*Config, error) {
	configPath := filepath.Dir(configFile)
	loader := NewConfigLoader(configPath, "WIFIPARSE")
	return loader.LoadConfig()
}
