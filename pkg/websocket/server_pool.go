package websocket

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// ConnectionPool 持有服务端全部活跃连接，
// 负责总量与单 IP 配额的准入控制。
type ConnectionPool struct {
	config *PoolConfig
	logger logger.Logger

	mu     sync.Mutex
	conns  map[string]*Connection
	byIP   map[string]int
	closed bool

	// totalCount 历史累计接入数，只增不减
	totalCount atomic.Int64
}

// NewConnectionPool 创建连接池
func NewConnectionPool(cfg *PoolConfig, log logger.Logger) *ConnectionPool {
	if cfg == nil {
		defaultCfg := DefaultPoolConfig()
		cfg = &defaultCfg
	}
	if log == nil {
		log = logger.NewNoop()
	}
	return &ConnectionPool{
		config: cfg,
		logger: log,
		conns:  make(map[string]*Connection),
		byIP:   make(map[string]int),
	}
}

// Add 准入一条连接，超出总量或单 IP 配额时拒绝
func (p *ConnectionPool) Add(conn *Connection) error {
	ip := extractIP(conn.RemoteAddr())

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if p.config.MaxConnections > 0 && len(p.conns) >= p.config.MaxConnections {
		return ErrPoolFull
	}
	if p.config.MaxConnectionsPerIP > 0 && p.byIP[ip] >= p.config.MaxConnectionsPerIP {
		return ErrMaxConnectionsPerIP
	}

	p.conns[conn.ID()] = conn
	p.byIP[ip]++
	p.totalCount.Add(1)
	return nil
}

// Remove 摘除连接并关闭，未登记的 ID 为空操作
func (p *ConnectionPool) Remove(connID string) {
	p.mu.Lock()
	conn, ok := p.conns[connID]
	if ok {
		delete(p.conns, connID)
		ip := extractIP(conn.RemoteAddr())
		if p.byIP[ip]--; p.byIP[ip] <= 0 {
			delete(p.byIP, ip)
		}
	}
	p.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}

// Get 按 ID 查找连接
func (p *ConnectionPool) Get(connID string) (*Connection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	conn, ok := p.conns[connID]
	return conn, ok
}

// Count 当前活跃连接数
func (p *ConnectionPool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns)
}

// Stats 返回统计快照
func (p *ConnectionPool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	perIP := make(map[string]int, len(p.byIP))
	for ip, n := range p.byIP {
		perIP[ip] = n
	}
	return Stats{
		TotalConnections:  p.totalCount.Load(),
		ActiveConnections: int64(len(p.conns)),
		ConnectionsPerIP:  perIP,
	}
}

// Close 关闭连接池，逐一关闭全部在池连接
func (p *ConnectionPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	conns := p.conns
	p.conns = make(map[string]*Connection)
	p.byIP = make(map[string]int)
	p.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
	return nil
}

// extractIP 从 host:port 地址中取 IP 部分
func extractIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
