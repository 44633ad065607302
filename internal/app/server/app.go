/**
 * WifiParse应用程序核心逻辑
 * @author: sun977
 * @date: 2026.08.25
 * @description: 应用核心逻辑，负责初始化各组件并管理服务生命周期
 * @architecture: 将应用逻辑从main函数中分离，cmd层只负责命令行入口
 */

package server

import (
	"context"
	"fmt"
	"net/http"

	"wifiparse/internal/app/server/router"
	"wifiparse/internal/app/server/setup"
	"wifiparse/internal/config"
	"wifiparse/internal/pkg/logger"
	parsesvc "wifiparse/internal/service/parse"
)

// App WifiParse应用程序结构体
type App struct {
	router        *router.Router
	httpServer    *http.Server
	config        *config.Config
	logger        *logger.LoggerManager
	parseService  parsesvc.ParseService
	configWatcher *config.ConfigWatcher
}

// NewApp 创建新的WifiParse应用程序实例
func NewApp() (*App, error) {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 初始化日志管理器
	loggerManager, err := logger.InitLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 设置全局日志实例
	logger.LoggerInstance = loggerManager

	// 记录应用启动日志
	logger.Info("WifiParse application initializing...")

	// 初始化各模块
	parseModule := setup.SetupParse()
	serverModule := setup.SetupServer(cfg, parseModule.ParseService)

	return &App{
		router:       serverModule.Router,
		httpServer:   serverModule.HTTPServer,
		config:       cfg,
		logger:       loggerManager,
		parseService: parseModule.ParseService,
	}, nil
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// GetConfig 获取配置实例
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetHTTPServer 获取HTTP服务器实例
func (a *App) GetHTTPServer() *http.Server {
	return a.httpServer
}

// GetParseService 获取解析服务实例
func (a *App) GetParseService() parsesvc.ParseService {
	return a.parseService
}

// Start 启动WifiParse应用程序
func (a *App) Start() error {
	logger.Info("Starting WifiParse server...")

	// 启动HTTP服务器
	go func() {
		var err error
		if a.config.Server.TLS.Enabled {
			err = a.httpServer.ListenAndServeTLS(a.config.Server.TLS.CertFile, a.config.Server.TLS.KeyFile)
		} else {
			err = a.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start HTTP server: ", err)
		}
	}()

	logger.Infof("WifiParse started successfully on %s:%d", a.config.Server.Host, a.config.Server.Port)

	// 启动配置热更新监听（后台运行）
	if err := a.startConfigWatcher(); err != nil {
		logger.Warnf("Config watcher not started: %v", err)
	}

	return nil
}

// Stop 停止WifiParse应用程序
func (a *App) Stop(ctx context.Context) error {
	logger.Info("Stopping WifiParse server...")

	// 停止配置监听
	if a.configWatcher != nil {
		a.configWatcher.Stop()
	}

	// 停止HTTP服务器
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	logger.Info("WifiParse stopped successfully")
	return nil
}

// startConfigWatcher 启动配置文件热更新监听
// 变更先经过合法性校验，再依次应用到日志和路由，任一步失败则本次变更不生效
func (a *App) startConfigWatcher() error {
	configFile := config.ConfigFileUsed()
	if configFile == "" {
		// 纯环境变量/默认值启动时没有可监听的文件
		logger.Info("No config file in use, hot reload disabled")
		return nil
	}

	watcher, err := config.NewConfigWatcher(configFile)
	if err != nil {
		return err
	}

	watcher.AddCallback(config.ValidateConfigChange)
	watcher.AddCallback(func(oldConfig, newConfig *config.Config) error {
		if err := a.logger.UpdateConfig(newConfig.Log); err != nil {
			return fmt.Errorf("failed to update logger config: %w", err)
		}
		if err := a.router.UpdateConfig(setup.BuildRouterConfig(newConfig)); err != nil {
			return fmt.Errorf("failed to update router config: %w", err)
		}
		a.config = newConfig
		config.SetConfig(newConfig)
		logger.Infof("Config reloaded from %s", configFile)
		return nil
	})

	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return err
	}

	a.configWatcher = watcher
	logger.Infof("Watching config file %s for changes", configFile)
	return nil
}
