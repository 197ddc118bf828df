// pkg/websocket/config.go
package websocket

import (
	"net/http"
	"time"

	"github.com/lk2023060901/xsockjs/pkg/session"
)

// ServerConfig 服务端配置
type ServerConfig struct {
	// ReadBufferSize 读缓冲区大小（字节）
	ReadBufferSize int `mapstructure:"read_buffer_size" json:"read_buffer_size" yaml:"read_buffer_size"`
	// WriteBufferSize 写缓冲区大小（字节）
	WriteBufferSize int `mapstructure:"write_buffer_size" json:"write_buffer_size" yaml:"write_buffer_size"`
	// HandshakeTimeout 握手超时
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout" json:"handshake_timeout" yaml:"handshake_timeout"`
	// ReadTimeout 单次读取超时
	ReadTimeout time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	// WriteTimeout 单次写入超时
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	// MaxMessageSize 入站消息大小上限（字节），0 表示不限制
	MaxMessageSize int64 `mapstructure:"max_message_size" json:"max_message_size" yaml:"max_message_size"`
	// EnableCompression 启用压缩
	EnableCompression bool `mapstructure:"enable_compression" json:"enable_compression" yaml:"enable_compression"`
	// WorkerPoolSize 工作池大小
	WorkerPoolSize int `mapstructure:"worker_pool_size" json:"worker_pool_size" yaml:"worker_pool_size"`

	// Pool 连接池配置
	Pool PoolConfig `mapstructure:"pool" json:"pool" yaml:"pool"`
	// Session 会话相关参数配置
	Session *session.Config `mapstructure:"session" json:"session" yaml:"session"`

	// CheckOrigin 跨域检查，由代码注入
	CheckOrigin func(r *http.Request) bool `mapstructure:"-" json:"-" yaml:"-"`
}

// PoolConfig 连接池配置
type PoolConfig struct {
	// MaxConnections 最大连接数，0 表示不限制
	MaxConnections int `mapstructure:"max_connections" json:"max_connections" yaml:"max_connections"`
	// MaxConnectionsPerIP 每 IP 最大连接数，0 表示不限制
	MaxConnectionsPerIP int `mapstructure:"max_connections_per_ip" json:"max_connections_per_ip" yaml:"max_connections_per_ip"`
}

// DefaultPoolConfig 返回默认连接池配置
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConnections:      10000,
		MaxConnectionsPerIP: 0,
	}
}

// DefaultServerConfig 返回默认服务端配置
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		MaxMessageSize:   64 * 1024,
		WorkerPoolSize:   1024,
		Pool:             DefaultPoolConfig(),
		Session:          session.DefaultConfig(),
	}
}

// Validate 验证配置
func (c *ServerConfig) Validate() error {
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return ErrInvalidConfig
	}
	if c.WorkerPoolSize <= 0 {
		return ErrInvalidConfig
	}
	if c.Session == nil {
		c.Session = session.DefaultConfig()
	}
	return c.Session.Validate()
}
