// pkg/websocket/server.go
package websocket

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/session"
)

// Server WebSocket 服务端。每个升级成功的连接绑定一个传输端，
// 由传输端向注册表挂载目标会话。
type Server struct {
	config   *ServerConfig
	upgrader *websocket.Upgrader
	logger   logger.Logger

	// 会话注册表
	registry session.Registry

	// 连接池
	pool *ConnectionPool

	// 工作池
	workerPool *ants.Pool

	// 指标
	metrics           *ServerMetrics
	metricsRegisterer prometheus.Registerer

	// 状态
	mu      sync.RWMutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// ServerOption 服务端选项
type ServerOption func(*Server)

// WithServerLogger 设置服务端日志
func WithServerLogger(log logger.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithMetricsRegisterer 设置指标注册器
func WithMetricsRegisterer(reg prometheus.Registerer) ServerOption {
	return func(s *Server) {
		s.metricsRegisterer = reg
	}
}

// NewServer 创建服务端
func NewServer(cfg *ServerConfig, registry session.Registry, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, ErrInvalidConfig
	}

	s := &Server{
		config:   cfg,
		registry: registry,
		logger:   logger.NewNoop(),
		closeCh:  make(chan struct{}),
	}

	// 应用选项
	for _, opt := range opts {
		opt(s)
	}

	// 初始化 upgrader
	s.upgrader = &websocket.Upgrader{
		ReadBufferSize:    cfg.ReadBufferSize,
		WriteBufferSize:   cfg.WriteBufferSize,
		HandshakeTimeout:  cfg.HandshakeTimeout,
		EnableCompression: cfg.EnableCompression,
		CheckOrigin:       cfg.CheckOrigin,
	}

	// 浏览器端跨域由部署层控制，默认放行
	if s.upgrader.CheckOrigin == nil {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}

	// 初始化连接池
	s.pool = NewConnectionPool(&cfg.Pool, s.logger)

	// 初始化工作池
	workerPool, err := ants.NewPool(cfg.WorkerPoolSize)
	if err != nil {
		return nil, err
	}
	s.workerPool = workerPool

	// 初始化指标
	if s.metricsRegisterer != nil {
		s.metrics = NewServerMetrics(s.metricsRegisterer)
	}

	return s, nil
}

// Handler 返回 http.Handler
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.ServeHTTP)
}

// ServeHTTP 实现 http.Handler 接口
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrade(w, r)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	sid := SessionID(r.URL.Path)
	transport := NewTransport(conn, s.registry, sid, s.config.Session.RecvChannelSize, s.logger, s.metrics)

	// 升级完成后 ServeHTTP 即返回，请求上下文随之取消，
	// 传输端的生命周期只由连接本身决定
	runCtx := context.WithoutCancel(r.Context())

	s.wg.Add(1)
	submitErr := s.workerPool.Submit(func() {
		defer s.wg.Done()
		defer s.removeConnection(conn)
		transport.Run(runCtx)
	})
	if submitErr != nil {
		s.wg.Done()
		s.logger.Warn("worker pool rejected connection", "error", submitErr, "conn_id", conn.ID())
		s.removeConnection(conn)
	}
}

// Upgrade 升级 HTTP 连接为 WebSocket 并纳入连接池
func (s *Server) Upgrade(w http.ResponseWriter, r *http.Request) (*Connection, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrPoolClosed
	}
	s.mu.RUnlock()

	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.metrics != nil {
			s.metrics.OnUpgradeError()
		}
		return nil, ErrUpgradeFailed
	}

	conn := NewConnection(wsConn,
		WithConnectionLogger(s.logger),
		WithReadTimeout(s.config.ReadTimeout),
		WithWriteTimeout(s.config.WriteTimeout),
	)

	// 设置消息大小限制
	if s.config.MaxMessageSize > 0 {
		conn.SetReadLimit(s.config.MaxMessageSize)
	}

	// 添加到连接池
	if err := s.pool.Add(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// 更新指标
	if s.metrics != nil {
		s.metrics.OnConnectionOpened()
	}

	return conn, nil
}

// removeConnection 移除连接
func (s *Server) removeConnection(conn *Connection) {
	s.pool.Remove(conn.ID())
	if s.metrics != nil {
		s.metrics.OnConnectionClosed()
	}
}

// GetConnection 获取指定连接
func (s *Server) GetConnection(connID string) (*Connection, bool) {
	return s.pool.Get(connID)
}

// GetConnectionCount 获取活跃连接数
func (s *Server) GetConnectionCount() int {
	return s.pool.Count()
}

// Stats 获取连接池统计信息
func (s *Server) Stats() Stats {
	return s.pool.Stats()
}

// Close 关闭服务端
func (s *Server) Close() error {
	return s.CloseWithContext(context.Background())
}

// CloseWithContext 带上下文关闭服务端
func (s *Server) CloseWithContext(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.closeCh)
	s.mu.Unlock()

	// 关闭所有连接，传输端随之退出并交还会话
	_ = s.pool.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.workerPool.Release()
	return nil
}

// SessionID 从请求路径中提取会话标识。
// 路径形如 /<prefix>/<server>/<session>/websocket 时取倒数第二段，
// 其余形态生成新的随机标识。
func SessionID(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) >= 3 && segments[len(segments)-1] == "websocket" {
		if sid := segments[len(segments)-2]; sid != "" {
			return sid
		}
	}
	return uuid.New().String()
}
