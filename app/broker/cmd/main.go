package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lk2023060901/xsockjs/app/broker/internal/handler"
	"github.com/lk2023060901/xsockjs/app/broker/internal/server"
	"github.com/lk2023060901/xsockjs/pkg/app"
	"github.com/lk2023060901/xsockjs/pkg/config"
	"github.com/lk2023060901/xsockjs/pkg/logger"
	xprom "github.com/lk2023060901/xsockjs/pkg/prometheus"
	"github.com/lk2023060901/xsockjs/pkg/session"
	"github.com/lk2023060901/xsockjs/pkg/web"
	"github.com/lk2023060901/xsockjs/pkg/web/metrics"
	"github.com/lk2023060901/xsockjs/pkg/web/middleware"
	"github.com/lk2023060901/xsockjs/pkg/websocket"
)

// BrokerConfig Broker 业务配置
type BrokerConfig struct {
	// Prefix 服务挂载前缀
	Prefix string `mapstructure:"prefix"`
	// Handler 内置处理器名称（echo, close）
	Handler string `mapstructure:"handler"`
	// HeartbeatInterval 心跳广播间隔
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

// Config Broker 服务配置
type Config struct {
	Log     logger.Config             `mapstructure:"log"`
	Loggers map[string]*logger.Config `mapstructure:"loggers"`

	// Web Server 配置
	Web web.Config `mapstructure:"web"`

	// WebSocket 配置
	WebSocket websocket.ServerConfig `mapstructure:"websocket"`

	// Prometheus 配置
	Prometheus xprom.Config `mapstructure:"prometheus"`

	// Broker 配置
	Broker BrokerConfig `mapstructure:"broker"`
}

func main() {
	var cfg Config

	// 1. 加载配置
	if err := app.LoadConfig(&cfg); err != nil {
		panic(err)
	}
	if cfg.Broker.Prefix == "" {
		cfg.Broker.Prefix = "/echo"
	}
	if cfg.WebSocket.Session == nil {
		cfg.WebSocket.Session = session.DefaultConfig()
	}

	// 2. 初始化 Logger
	if cfg.Log.Level == "" {
		cfg.Log = *logger.DefaultConfig()
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		panic(err)
	}

	// 3. 创建 Prometheus 客户端
	if cfg.Prometheus.Namespace == "" {
		cfg.Prometheus = *xprom.DefaultConfig()
		// 指标统一走 Web Server 的 /metrics
		cfg.Prometheus.HTTPServer.Enabled = false
	}
	promClient, err := xprom.New(&cfg.Prometheus)
	if err != nil {
		l.Error("failed to create prometheus client", "error", err)
		return
	}
	metrics.InitMetrics(promClient.Registry())

	// 4. 创建会话注册表。工厂闭包延迟取注册表引用，
	// 处理器回发时注册表已就绪
	var registry *session.BaseRegistry
	factory := handler.NewFactory(cfg.Broker.Handler,
		func() handler.Sender { return registry }, l)
	registry, err = session.NewBaseRegistry(cfg.WebSocket.Session, factory, l.Named("session"))
	if err != nil {
		l.Error("failed to create session registry", "error", err)
		return
	}
	promClient.Registry().MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "xsockjs",
			Subsystem: "session",
			Name:      "active_total",
			Help:      "Number of sessions currently held by the registry.",
		},
		func() float64 { return float64(registry.Count()) },
	))

	// 5. 创建 WebSocket Server
	wsServer, err := websocket.NewServer(&cfg.WebSocket, registry,
		websocket.WithServerLogger(l.Named("websocket")),
		websocket.WithMetricsRegisterer(promClient.Registry()),
	)
	if err != nil {
		l.Error("failed to create websocket server", "error", err)
		return
	}

	// 6. 创建 Web Server 并注册路由
	webServer := web.NewServer(&cfg.Web, l)
	webServer.Router().Use(middleware.CORS())
	webServer.Router().Use(middleware.Metrics())

	rateLimiter := middleware.NewRateLimiter(l, &middleware.RateLimitConfig{
		RequestsPerSecond: 1000,
		Burst:             2000,
		PerIP:             true,
		SkipPaths:         []string{"/health"},
		MaxLimiters:       10000,
		LimiterTTL:        10 * time.Minute,
		CleanupInterval:   time.Minute,
	})
	webServer.Router().Use(middleware.RateLimit(rateLimiter))

	group := webServer.Router().Group(cfg.Broker.Prefix)
	group.GET("/info", server.Info())
	group.GET("/websocket", gin.WrapH(wsServer.Handler()))
	group.GET("/:server/:session/websocket", gin.WrapH(wsServer.Handler()))

	webServer.Router().GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": registry.Count()})
	})
	webServer.Router().GET("/metrics", gin.WrapH(promClient.Handler()))

	// 7. 组装应用
	application := app.NewBaseApp(
		app.WithName("broker"),
		app.WithLogger(l),
		app.WithNamedLoggers(cfg.Loggers),
	)

	heartbeater := server.NewHeartbeater(cfg.Broker.HeartbeatInterval, registry, l)
	application.AppendServer(
		server.NewHTTPServer(&cfg.Web, webServer, l),
		heartbeater,
	)

	// 8. 配置热更新：心跳间隔随配置文件变化即时生效
	watcher, err := config.NewWatcher[Config](app.GetConfigPath(), "yaml", l.Named("config"))
	if err != nil {
		l.Warn("config hot reload disabled", "error", err)
	} else {
		watcher.OnChange(func(next *Config) {
			heartbeater.SetInterval(next.Broker.HeartbeatInterval)
		})
	}

	// 注册表最后停机，先挂断连接再广播关闭帧
	application.AppendCloser(&registryCloser{registry: registry})
	application.AppendCloser(wsServer)
	application.AppendCloser(rateLimiter)
	application.AppendCloser(promClient)

	// 9. 运行
	if err := application.Run(); err != nil {
		l.Error("broker exited with error", "error", err)
	}
}

type registryCloser struct {
	registry *session.BaseRegistry
}

func (c *registryCloser) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.registry.Stop(ctx)
}
