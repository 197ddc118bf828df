package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(&Config{
		Namespace: "xsockjs",
		// 不启动独立 HTTP 服务器，避免端口冲突
		HTTPServer: HTTPServerConfig{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "xsockjs", cfg.Namespace)
	assert.True(t, cfg.HTTPServer.Enabled)
	assert.Equal(t, ":9090", cfg.HTTPServer.Addr)
	assert.Equal(t, "/metrics", cfg.HTTPServer.Path)
	assert.True(t, cfg.EnableGoCollector)
	assert.True(t, cfg.EnableProcessCollector)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("empty namespace", func(t *testing.T) {
		cfg := &Config{}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("http server enabled without addr", func(t *testing.T) {
		cfg := &Config{
			Namespace:  "xsockjs",
			HTTPServer: HTTPServerConfig{Enabled: true},
		}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("http server disabled", func(t *testing.T) {
		cfg := &Config{Namespace: "xsockjs"}
		assert.NoError(t, cfg.Validate())
	})
}

func TestClient_Counter(t *testing.T) {
	c := newTestClient(t)

	frames, err := c.NewCounter("frames_sent_total", "Frames sent to transports.", []string{"type"})
	require.NoError(t, err)

	frames.WithLabelValues("open").Inc()
	frames.WithLabelValues("message").Add(3)

	// 重名注册被拒绝，原指标不受影响
	_, err = c.NewCounter("frames_sent_total", "dup", []string{"type"})
	assert.ErrorIs(t, err, ErrMetricExists)

	got, ok := c.GetCounter("frames_sent_total")
	require.True(t, ok)
	assert.Same(t, frames, got)
}

func TestClient_Gauge(t *testing.T) {
	c := newTestClient(t)

	sessions, err := c.NewGauge("sessions_active", "Sessions held by the registry.", []string{"state"})
	require.NoError(t, err)

	sessions.WithLabelValues("running").Set(7)
	sessions.WithLabelValues("running").Inc()
	sessions.WithLabelValues("running").Sub(2)

	got, ok := c.GetGauge("sessions_active")
	require.True(t, ok)
	assert.Same(t, sessions, got)
}

func TestClient_Histogram(t *testing.T) {
	c := newTestClient(t)

	latency, err := c.NewHistogram("attach_duration_seconds", "Session attach latency.",
		[]string{"outcome"}, []float64{0.001, 0.01, 0.1, 1})
	require.NoError(t, err)
	latency.WithLabelValues("ok").Observe(0.004)

	// buckets 为 nil 时使用默认分桶
	sizes, err := c.NewHistogram("payload_bytes", "Inbound payload size.", nil, nil)
	require.NoError(t, err)
	sizes.WithLabelValues().Observe(128)
}

func TestClient_Summary(t *testing.T) {
	c := newTestClient(t)

	flush, err := c.NewSummary("flush_duration_seconds", "Backlog flush latency.", []string{"sid"}, nil)
	require.NoError(t, err)
	flush.WithLabelValues("abc").Observe(0.002)

	got, ok := c.GetSummary("flush_duration_seconds")
	require.True(t, ok)
	assert.Same(t, flush, got)
}

func TestClient_LookupWrongKind(t *testing.T) {
	c := newTestClient(t)

	_, err := c.NewCounter("frames_sent_total", "Frames sent.", nil)
	require.NoError(t, err)

	// 名称存在但类型不符时查不到
	_, ok := c.GetGauge("frames_sent_total")
	assert.False(t, ok)
	_, ok = c.GetCounter("missing")
	assert.False(t, ok)
}

func TestClient_MustVariantsPanicOnDuplicate(t *testing.T) {
	c := newTestClient(t)

	gauge := c.MustNewGauge("sessions_active", "Sessions held by the registry.", nil)
	require.NotNil(t, gauge)

	assert.Panics(t, func() {
		c.MustNewGauge("sessions_active", "dup", nil)
	})
}

func TestClient_Close(t *testing.T) {
	c, err := New(&Config{
		Namespace:  "xsockjs",
		HTTPServer: HTTPServerConfig{Enabled: false},
	})
	require.NoError(t, err)
	assert.False(t, c.IsClosed())

	require.NoError(t, c.Close())
	assert.True(t, c.IsClosed())

	// 重复关闭与关闭后注册都返回 ErrClientClosed
	assert.ErrorIs(t, c.Close(), ErrClientClosed)
	_, err = c.NewCounter("late", "registered after close", nil)
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClient_RegisterCollector(t *testing.T) {
	c := newTestClient(t)

	occupancy := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "xsockjs",
			Name:      "registry_occupancy",
			Help:      "Records currently held by the registry.",
		},
		func() float64 { return 42 },
	)
	assert.NoError(t, c.RegisterCollector(occupancy))
}

func TestClient_HandlerAndRegistry(t *testing.T) {
	c := newTestClient(t)
	assert.NotNil(t, c.Handler())
	assert.NotNil(t, c.Registry())
}
