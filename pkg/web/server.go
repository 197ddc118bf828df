package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/web/middleware"
	"github.com/lk2023060901/xsockjs/pkg/web/validator"
)

// Server Gin 引擎的装配壳：挂好基础中间件与校验器，
// 路由注册与监听生命周期交给调用方。
type Server struct {
	engine *gin.Engine
	config *Config
	logger logger.Logger
}

// NewServer 创建 Web 服务
func NewServer(cfg *Config, l logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if l == nil {
		l = logger.Default()
	}

	gin.SetMode(cfg.Mode)
	validator.Init()

	engine := gin.New()
	engine.Use(middleware.Logger(l))
	engine.Use(middleware.Recovery(l, true))

	return &Server{
		engine: engine,
		config: cfg,
		logger: l.Named("web"),
	}
}

// Router 返回 Gin 引擎，用于注册路由与中间件
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Handler 返回 http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Config 返回服务配置
func (s *Server) Config() *Config {
	return s.config
}
