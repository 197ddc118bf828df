// pkg/websocket/connection.go
package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// Connection WebSocket 连接封装。写操作统一串行化，
// 保证帧在线路上的顺序与提交顺序一致。
type Connection struct {
	id   string
	conn *websocket.Conn

	// 配置
	readTimeout  time.Duration
	writeTimeout time.Duration

	// 日志
	logger logger.Logger

	// 写串行化
	writeMu sync.Mutex

	// 状态
	mu         sync.RWMutex
	state      ConnectionState
	closed     atomic.Bool
	closeChan  chan struct{}
	closeOnce  sync.Once
	closeError error

	// 连接信息
	remoteAddr  string
	localAddr   string
	connectedAt time.Time
}

// ConnectionOption 连接选项
type ConnectionOption func(*Connection)

// WithConnectionLogger 设置连接日志
func WithConnectionLogger(log logger.Logger) ConnectionOption {
	return func(c *Connection) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithReadTimeout 设置读取超时
func WithReadTimeout(d time.Duration) ConnectionOption {
	return func(c *Connection) {
		c.readTimeout = d
	}
}

// WithWriteTimeout 设置写入超时
func WithWriteTimeout(d time.Duration) ConnectionOption {
	return func(c *Connection) {
		c.writeTimeout = d
	}
}

// NewConnection 创建连接
func NewConnection(conn *websocket.Conn, opts ...ConnectionOption) *Connection {
	c := &Connection{
		id:           uuid.New().String(),
		conn:         conn,
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		logger:       logger.NewNoop(),
		closeChan:    make(chan struct{}),
		state:        StateConnected,
		remoteAddr:   conn.RemoteAddr().String(),
		localAddr:    conn.LocalAddr().String(),
		connectedAt:  time.Now(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ID 返回连接 ID
func (c *Connection) ID() string {
	return c.id
}

// State 返回连接状态
func (c *Connection) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// RemoteAddr 返回远程地址
func (c *Connection) RemoteAddr() string {
	return c.remoteAddr
}

// LocalAddr 返回本地地址
func (c *Connection) LocalAddr() string {
	return c.localAddr
}

// ConnectedAt 返回连接时间
func (c *Connection) ConnectedAt() time.Time {
	return c.connectedAt
}

// IsClosed 检查连接是否已关闭
func (c *Connection) IsClosed() bool {
	return c.closed.Load()
}

// Info 返回连接信息
func (c *Connection) Info() ConnectionInfo {
	return ConnectionInfo{
		ID:          c.id,
		RemoteAddr:  c.remoteAddr,
		State:       c.State(),
		ConnectedAt: c.connectedAt,
	}
}

// ReadMessage 读取一条消息，应用读取超时
func (c *Connection) ReadMessage() (int, []byte, error) {
	if c.IsClosed() {
		return 0, nil, ErrConnectionClosed
	}
	if c.readTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	return c.conn.ReadMessage()
}

// WriteText 写入一条文本消息
func (c *Connection) WriteText(data string) error {
	if c.IsClosed() {
		return ErrConnectionClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(data))
}

// WriteCloseFrame 写入 WebSocket 关闭控制帧
func (c *Connection) WriteCloseFrame(code int, reason string) error {
	if c.IsClosed() {
		return ErrConnectionClosed
	}
	return c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(c.writeTimeout),
	)
}

// Ping 发送 Ping
func (c *Connection) Ping() error {
	if c.IsClosed() {
		return ErrConnectionClosed
	}
	return c.conn.WriteControl(
		websocket.PingMessage,
		[]byte{},
		time.Now().Add(c.writeTimeout),
	)
}

// SetPongHandler 设置 Pong 处理器
func (c *Connection) SetPongHandler(h func(appData string) error) {
	c.conn.SetPongHandler(h)
}

// SetReadLimit 设置读取限制
func (c *Connection) SetReadLimit(limit int64) {
	c.conn.SetReadLimit(limit)
}

// CloseChan 返回关闭通知通道
func (c *Connection) CloseChan() <-chan struct{} {
	return c.closeChan
}

// Close 关闭连接
func (c *Connection) Close() error {
	return c.CloseWithError(nil)
}

// CloseWithError 带错误关闭连接
func (c *Connection) CloseWithError(err error) error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeError = err

		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()

		close(c.closeChan)

		// 发送关闭帧
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)

		// 关闭底层连接
		_ = c.conn.Close()
	})
	return nil
}

// CloseError 返回关闭错误
func (c *Connection) CloseError() error {
	return c.closeError
}

// UnderlyingConn 返回底层 websocket.Conn（谨慎使用）
func (c *Connection) UnderlyingConn() *websocket.Conn {
	return c.conn
}
