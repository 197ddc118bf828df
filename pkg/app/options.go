package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// Options 生命周期宿主的配置
type Options struct {
	// ID 进程实例标识，默认随机生成
	ID string
	// Name 服务名称，作为主日志对象的命名空间
	Name string
	// StopTimeout 停机时等待服务退出的上限
	StopTimeout time.Duration
	// Logger 主日志对象
	Logger logger.Logger
	// NamedLoggers 具名日志配置，Run 时初始化
	NamedLoggers map[string]*logger.Config
}

// Option 配置函数
type Option func(*Options)

// DefaultOptions 返回默认配置
func DefaultOptions() Options {
	return Options{
		ID:          uuid.New().String(),
		Name:        AppName,
		StopTimeout: 30 * time.Second,
		Logger:      logger.Default(),
	}
}

// WithID 设置实例标识
func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}

// WithName 设置服务名称
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithLogger 设置主日志对象
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithNamedLoggers 设置具名日志配置
func WithNamedLoggers(loggers map[string]*logger.Config) Option {
	return func(o *Options) { o.NamedLoggers = loggers }
}

// WithStopTimeout 设置停机等待上限
func WithStopTimeout(t time.Duration) Option {
	return func(o *Options) { o.StopTimeout = t }
}
