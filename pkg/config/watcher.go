package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// Watcher 配置监听器，基于 fsnotify 实现热更新
type Watcher[T any] struct {
	loader     *Loader
	configPath string
	configType string
	log        logger.Logger
	callbacks  []func(*T)
	mu         sync.RWMutex
	config     *T
}

// NewWatcher 创建配置监听器。
// configPath 配置文件路径，configType "yaml" 或 "json"。
func NewWatcher[T any](configPath string, configType string, log logger.Logger) (*Watcher[T], error) {
	if log == nil {
		log = logger.NewNoop()
	}

	loader := NewLoader()
	if err := loader.LoadFile(configPath, configType); err != nil {
		return nil, err
	}

	var cfg T
	if err := loader.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	w := &Watcher[T]{
		loader:     loader,
		configPath: configPath,
		configType: configType,
		log:        log,
		config:     &cfg,
	}
	w.watch()
	return w, nil
}

// GetConfig 获取当前配置（线程安全）
func (w *Watcher[T]) GetConfig() *T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// OnChange 注册配置变化回调
func (w *Watcher[T]) OnChange(callback func(*T)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// watch 监听配置文件变化，变化后整体重载。
// 重载失败保留旧配置，不触发回调。
func (w *Watcher[T]) watch() {
	w.loader.viper.WatchConfig()
	w.loader.viper.OnConfigChange(func(e fsnotify.Event) {
		newCfg, err := Load[T](w.configPath, w.configType)
		if err != nil {
			w.log.Error("failed to reload config", "path", w.configPath, "error", err)
			return
		}

		w.mu.Lock()
		w.config = newCfg
		callbacks := w.callbacks
		w.mu.Unlock()

		w.log.Info("config reloaded", "path", w.configPath)
		for _, callback := range callbacks {
			callback(newCfg)
		}
	})
}
