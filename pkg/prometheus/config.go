package prometheus

import "time"

// Config 指标客户端配置
type Config struct {
	// Namespace 指标名前缀，必填
	Namespace string `json:"namespace" yaml:"namespace"`
	// Subsystem 指标名第二段，可空
	Subsystem string `json:"subsystem" yaml:"subsystem"`

	// HTTPServer 独立抓取端口配置
	HTTPServer HTTPServerConfig `json:"http_server" yaml:"http_server"`

	// EnableGoCollector 注册 Go 运行时采集器
	EnableGoCollector bool `json:"enable_go_collector" yaml:"enable_go_collector"`
	// EnableProcessCollector 注册进程采集器
	EnableProcessCollector bool `json:"enable_process_collector" yaml:"enable_process_collector"`
}

// HTTPServerConfig 抓取端口配置
type HTTPServerConfig struct {
	// Enabled 是否拉起独立端口
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Addr 监听地址
	Addr string `json:"addr" yaml:"addr"`
	// Path 抓取路径，缺省 /metrics
	Path string `json:"path" yaml:"path"`
	// Timeout 读写超时，缺省 10s
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Namespace: "xsockjs",
		HTTPServer: HTTPServerConfig{
			Enabled: true,
			Addr:    ":9090",
			Path:    "/metrics",
			Timeout: 10 * time.Second,
		},
		EnableGoCollector:      true,
		EnableProcessCollector: true,
	}
}

// Validate 校验并补全缺省值
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return ErrInvalidConfig
	}
	if !c.HTTPServer.Enabled {
		return nil
	}
	if c.HTTPServer.Addr == "" {
		return ErrInvalidConfig
	}
	if c.HTTPServer.Path == "" {
		c.HTTPServer.Path = "/metrics"
	}
	if c.HTTPServer.Timeout == 0 {
		c.HTTPServer.Timeout = 10 * time.Second
	}
	return nil
}
