// pkg/websocket/types.go
package websocket

import "time"

// ConnectionState 连接状态
type ConnectionState int

const (
	// StateConnected 已连接
	StateConnected ConnectionState = iota
	// StateClosed 已关闭
	StateClosed
)

// String 返回连接状态的字符串表示
func (s ConnectionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats 连接池统计信息
type Stats struct {
	TotalConnections  int64          `json:"total_connections"`
	ActiveConnections int64          `json:"active_connections"`
	ConnectionsPerIP  map[string]int `json:"connections_per_ip"`
}

// ConnectionInfo 连接信息
type ConnectionInfo struct {
	ID          string          `json:"id"`
	RemoteAddr  string          `json:"remote_addr"`
	State       ConnectionState `json:"state"`
	ConnectedAt time.Time       `json:"connected_at"`
}
