package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher 配置文件监听器
//
// 工作原理:
// 1. 使用 fsnotify 监听配置文件所在目录的变更事件
// 2. 检测到写入或创建事件后，延迟 reloadDelay 再重新加载，合并编辑器的连续写入
// 3. 重新加载成功后依次执行注册的回调，任一回调返回错误则放弃本次变更
// 4. 回调全部成功后才替换内存中的配置
//
// 注意事项:
// - 回调在监听协程中执行，耗时操作应自行异步处理
// - Stop 之后不可复用，需重新创建
type ConfigWatcher struct {
	configPath  string
	config      *Config
	loader      *ConfigLoader
	watcher     *fsnotify.Watcher
	callbacks   []ConfigChangeCallback
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	reloadDelay time.Duration
	lastReload  time.Time
}

// ConfigChangeCallback 配置变更回调函数
// 返回错误时本次配置变更不会生效
type ConfigChangeCallback func(oldConfig, newConfig *Config) error

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ConfigWatcher{
		configPath:  configPath,
		loader:      NewConfigLoader(filepath.Dir(configPath), "WIFIPARSE"),
		watcher:     watcher,
		callbacks:   make([]ConfigChangeCallback, 0),
		ctx:         ctx,
		cancel:      cancel,
		reloadDelay: time.Second,
	}, nil
}

// Start 启动配置监听
func (cw *ConfigWatcher) Start() error {
	// 先加载一次配置
	config, err := cw.loader.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load initial config: %w", err)
	}

	cw.mu.Lock()
	cw.config = config
	cw.mu.Unlock()

	// 监听实际使用的配置文件
	configFile := cw.loader.GetConfigPath()
	if configFile == "" {
		configFile = cw.configPath
	}

	if err := cw.watcher.Add(configFile); err != nil {
		return fmt.Errorf("failed to watch config file %s: %w", configFile, err)
	}

	go cw.watchLoop()

	return nil
}

// Stop 停止配置监听
func (cw *ConfigWatcher) Stop() error {
	cw.cancel()
	return cw.watcher.Close()
}

// GetConfig 获取当前配置
func (cw *ConfigWatcher) GetConfig() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.config
}

// AddCallback 注册配置变更回调
func (cw *ConfigWatcher) AddCallback(callback ConfigChangeCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// watchLoop 监听循环
func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case <-cw.ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleFileEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Config watcher error: %v\n", err)
		}
	}
}

// handleFileEvent 处理文件变更事件
func (cw *ConfigWatcher) handleFileEvent(event fsnotify.Event) {
	// 只关心写入和创建事件
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	// 去抖动，避免编辑器连续写入触发多次重载
	cw.mu.Lock()
	if time.Since(cw.lastReload) < cw.reloadDelay {
		cw.mu.Unlock()
		return
	}
	cw.lastReload = time.Now()
	cw.mu.Unlock()

	time.AfterFunc(cw.reloadDelay, cw.reloadConfig)
}

// reloadConfig 重新加载配置
func (cw *ConfigWatcher) reloadConfig() {
	newConfig, err := cw.loader.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to reload config: %v\n", err)
		return
	}

	cw.mu.RLock()
	oldConfig := cw.config
	callbacks := make([]ConfigChangeCallback, len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.RUnlock()

	// 所有回调成功后才替换配置
	for _, callback := range callbacks {
		if err := callback(oldConfig, newConfig); err != nil {
			fmt.Printf("Config change callback failed: %v\n", err)
			return
		}
	}

	cw.mu.Lock()
	cw.config = newConfig
	cw.mu.Unlock()

	fmt.Println("Config reloaded successfully")
}

// WatchConfig 监听配置文件并注册回调的便捷函数
func WatchConfig(configPath string, callback ConfigChangeCallback) (*ConfigWatcher, error) {
	watcher, err := NewConfigWatcher(configPath)
	if err != nil {
		return nil, err
	}

	if callback != nil {
		watcher.AddCallback(callback)
	}

	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return nil, err
	}

	return watcher, nil
}

// ValidateConfigChange 校验配置变更是否合法
func ValidateConfigChange(oldConfig, newConfig *Config) error {
	if newConfig == nil {
		return fmt.Errorf("new config is nil")
	}

	if newConfig.Server != nil {
		if newConfig.Server.Port <= 0 || newConfig.Server.Port > 65535 {
			return fmt.Errorf("invalid server port: %d", newConfig.Server.Port)
		}
	}

	if newConfig.Parser != nil && newConfig.Parser.Airport != nil {
		if len(newConfig.Parser.Airport.Markers) != 5 {
			return fmt.Errorf("airport parser requires exactly 5 header markers, got %d", len(newConfig.Parser.Airport.Markers))
		}
	}

	return nil
}
