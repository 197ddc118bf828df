// Package server 提供接入 pkg/app 生命周期的服务组件。
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/web"
)

// HTTPServer 把 web.Server 适配为 app.Server 组件
type HTTPServer struct {
	cfg    *web.Config
	web    *web.Server
	srv    *http.Server
	logger logger.Logger
}

// NewHTTPServer 创建 HTTP 服务组件
func NewHTTPServer(cfg *web.Config, webServer *web.Server, l logger.Logger) *HTTPServer {
	if l == nil {
		l = logger.NewNoop()
	}
	return &HTTPServer{
		cfg:    cfg,
		web:    webServer,
		logger: l.Named("http"),
	}
}

// Start 启动监听，立即返回
func (s *HTTPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.web.Handler(),
		ReadTimeout:    s.cfg.ReadTimeout,
		WriteTimeout:   s.cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		var err error
		if s.cfg.EnableTLS {
			s.logger.Info("starting https server", "addr", addr)
			err = s.srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
		} else {
			s.logger.Info("starting http server", "addr", addr)
			err = s.srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error("server startup failed", "error", err)
		}
	}()

	return nil
}

// Stop 立即关闭监听
func (s *HTTPServer) Stop() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Close()
}

// GracefulStop 优雅关闭，等待在途请求完成
func (s *HTTPServer) GracefulStop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
