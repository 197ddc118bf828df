package prometheus

import "github.com/prometheus/client_golang/prometheus"

// 底层类型别名，便于调用方免引底层包
type (
	Collector    = prometheus.Collector
	CounterVec   = prometheus.CounterVec
	GaugeVec     = prometheus.GaugeVec
	HistogramVec = prometheus.HistogramVec
	SummaryVec   = prometheus.SummaryVec
)

// Counter 只增计数器
type Counter interface {
	Inc()
	Add(float64)
}

// Gauge 可增减仪表
type Gauge interface {
	Set(float64)
	Inc()
	Dec()
	Add(float64)
	Sub(float64)
}

// Histogram 分桶观测
type Histogram interface {
	Observe(float64)
}

// Summary 分位数观测
type Summary interface {
	Observe(float64)
}
