package web

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Config Web 服务配置
type Config struct {
	// Port 监听端口
	Port int `mapstructure:"port"`
	// Mode Gin 运行模式：debug、release、test
	Mode string `mapstructure:"mode"`
	// ReadTimeout 请求读取超时
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout 响应写入超时
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// EnableTLS 启用 HTTPS
	EnableTLS bool   `mapstructure:"enable_tls"`
	CertFile  string `mapstructure:"cert_file"`
	KeyFile   string `mapstructure:"key_file"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		Mode:         gin.ReleaseMode,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}
