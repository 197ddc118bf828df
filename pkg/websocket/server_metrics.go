// pkg/websocket/server_metrics.go
package websocket

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// ServerMetrics 服务端指标
type ServerMetrics struct {
	// 连接指标
	activeConnections prometheus.Gauge
	totalConnections  prometheus.Counter

	// 帧指标
	framesSent       *prometheus.CounterVec
	payloadsReceived prometheus.Counter

	// 升级指标
	upgradeTotal  prometheus.Counter
	upgradeErrors prometheus.Counter
}

// NewServerMetrics 创建服务端指标
func NewServerMetrics(registerer prometheus.Registerer) *ServerMetrics {
	m := &ServerMetrics{
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "active_connections",
			Help:      "Number of active WebSocket connections",
		}),
		totalConnections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "connections_total",
			Help:      "Total number of WebSocket connections",
		}),
		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "frames_sent_total",
			Help:      "Total number of protocol frames sent",
		}, []string{"type"}),
		payloadsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "payloads_received_total",
			Help:      "Total number of decoded inbound payloads",
		}),
		upgradeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "upgrades_total",
			Help:      "Total number of WebSocket upgrades",
		}),
		upgradeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "xsockjs",
			Subsystem: "websocket",
			Name:      "upgrade_errors_total",
			Help:      "Total number of upgrade errors",
		}),
	}

	// 注册指标
	if registerer != nil {
		registerer.MustRegister(
			m.activeConnections,
			m.totalConnections,
			m.framesSent,
			m.payloadsReceived,
			m.upgradeTotal,
			m.upgradeErrors,
		)
	}

	return m
}

// OnConnectionOpened 连接打开
func (m *ServerMetrics) OnConnectionOpened() {
	m.activeConnections.Inc()
	m.totalConnections.Inc()
	m.upgradeTotal.Inc()
}

// OnConnectionClosed 连接关闭
func (m *ServerMetrics) OnConnectionClosed() {
	m.activeConnections.Dec()
}

// OnUpgradeError 升级错误
func (m *ServerMetrics) OnUpgradeError() {
	m.upgradeErrors.Inc()
}

// OnFrameSent 帧发送
func (m *ServerMetrics) OnFrameSent(t protocol.FrameType) {
	m.framesSent.WithLabelValues(t.String()).Inc()
}

// OnPayloadsReceived 入站负载解码成功
func (m *ServerMetrics) OnPayloadsReceived(n int) {
	m.payloadsReceived.Add(float64(n))
}
