package prometheus

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Client 指标客户端。持有独立的 Registry，
// 同名指标只注册一次，可选拉起独立的抓取端口。
type Client struct {
	config   *Config
	registry *prometheus.Registry

	// metrics 按名称去重，map[string]prometheus.Collector
	metrics sync.Map

	scrapeServer *http.Server
	closed       atomic.Bool
}

// New 创建指标客户端
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	if cfg.EnableGoCollector {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	if cfg.EnableProcessCollector {
		c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	if cfg.HTTPServer.Enabled {
		c.serveScrapeEndpoint()
	}
	return c, nil
}

// serveScrapeEndpoint 在独立端口暴露指标
func (c *Client) serveScrapeEndpoint() {
	mux := http.NewServeMux()
	mux.Handle(c.config.HTTPServer.Path, c.Handler())

	c.scrapeServer = &http.Server{
		Addr:         c.config.HTTPServer.Addr,
		Handler:      mux,
		ReadTimeout:  c.config.HTTPServer.Timeout,
		WriteTimeout: c.config.HTTPServer.Timeout,
	}
	go func() {
		_ = c.scrapeServer.ListenAndServe()
	}()
}

// Registry 底层 Registry，供直接注册自定义采集器
func (c *Client) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 抓取端点 Handler，供挂接到既有 HTTP 服务
func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Config 当前配置
func (c *Client) Config() *Config {
	return c.config
}

// Close 关闭客户端，重复关闭返回 ErrClientClosed
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if c.scrapeServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return c.scrapeServer.Shutdown(ctx)
}

// IsClosed 客户端是否已关闭
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}
