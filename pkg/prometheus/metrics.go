package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 指标按名称唯一，四种向量类型共用同一注册入口。
// 重名注册返回 ErrMetricExists，不区分类型。

func (c *Client) register(name string, build func() prometheus.Collector) (prometheus.Collector, error) {
	if c.IsClosed() {
		return nil, ErrClientClosed
	}

	if _, loaded := c.metrics.LoadOrStore(name, nil); loaded {
		return nil, ErrMetricExists
	}

	collector := build()
	if err := c.registry.Register(collector); err != nil {
		c.metrics.Delete(name)
		return nil, err
	}

	c.metrics.Store(name, collector)
	return collector, nil
}

func lookup[T Collector](c *Client, name string) (T, bool) {
	var zero T
	v, ok := c.metrics.Load(name)
	if !ok || v == nil {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// NewCounter 创建并注册 Counter
func (c *Client) NewCounter(name, help string, labels []string) (*CounterVec, error) {
	collector, err := c.register(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: c.config.Namespace,
				Subsystem: c.config.Subsystem,
				Name:      name,
				Help:      help,
			},
			labels,
		)
	})
	if err != nil {
		return nil, err
	}
	return collector.(*CounterVec), nil
}

// MustNewCounter 创建 Counter，失败则 panic
func (c *Client) MustNewCounter(name, help string, labels []string) *CounterVec {
	counter, err := c.NewCounter(name, help, labels)
	if err != nil {
		panic(err)
	}
	return counter
}

// GetCounter 获取已注册的 Counter
func (c *Client) GetCounter(name string) (*CounterVec, bool) {
	return lookup[*CounterVec](c, name)
}

// NewGauge 创建并注册 Gauge
func (c *Client) NewGauge(name, help string, labels []string) (*GaugeVec, error) {
	collector, err := c.register(name, func() prometheus.Collector {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: c.config.Namespace,
				Subsystem: c.config.Subsystem,
				Name:      name,
				Help:      help,
			},
			labels,
		)
	})
	if err != nil {
		return nil, err
	}
	return collector.(*GaugeVec), nil
}

// MustNewGauge 创建 Gauge，失败则 panic
func (c *Client) MustNewGauge(name, help string, labels []string) *GaugeVec {
	gauge, err := c.NewGauge(name, help, labels)
	if err != nil {
		panic(err)
	}
	return gauge
}

// GetGauge 获取已注册的 Gauge
func (c *Client) GetGauge(name string) (*GaugeVec, bool) {
	return lookup[*GaugeVec](c, name)
}

// NewHistogram 创建并注册 Histogram。buckets 为 nil 时使用默认分桶。
func (c *Client) NewHistogram(name, help string, labels []string, buckets []float64) (*HistogramVec, error) {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	collector, err := c.register(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: c.config.Namespace,
				Subsystem: c.config.Subsystem,
				Name:      name,
				Help:      help,
				Buckets:   buckets,
			},
			labels,
		)
	})
	if err != nil {
		return nil, err
	}
	return collector.(*HistogramVec), nil
}

// MustNewHistogram 创建 Histogram，失败则 panic
func (c *Client) MustNewHistogram(name, help string, labels []string, buckets []float64) *HistogramVec {
	histogram, err := c.NewHistogram(name, help, labels, buckets)
	if err != nil {
		panic(err)
	}
	return histogram
}

// GetHistogram 获取已注册的 Histogram
func (c *Client) GetHistogram(name string) (*HistogramVec, bool) {
	return lookup[*HistogramVec](c, name)
}

// NewSummary 创建并注册 Summary。objectives 为 nil 时使用 P50/P90/P99。
func (c *Client) NewSummary(name, help string, labels []string, objectives map[float64]float64) (*SummaryVec, error) {
	if objectives == nil {
		objectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}
	}
	collector, err := c.register(name, func() prometheus.Collector {
		return prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  c.config.Namespace,
				Subsystem:  c.config.Subsystem,
				Name:       name,
				Help:       help,
				Objectives: objectives,
			},
			labels,
		)
	})
	if err != nil {
		return nil, err
	}
	return collector.(*SummaryVec), nil
}

// MustNewSummary 创建 Summary，失败则 panic
func (c *Client) MustNewSummary(name, help string, labels []string, objectives map[float64]float64) *SummaryVec {
	summary, err := c.NewSummary(name, help, labels, objectives)
	if err != nil {
		panic(err)
	}
	return summary
}

// GetSummary 获取已注册的 Summary
func (c *Client) GetSummary(name string) (*SummaryVec, bool) {
	return lookup[*SummaryVec](c, name)
}

// RegisterCollector 注册自定义采集器
func (c *Client) RegisterCollector(collector Collector) error {
	if c.IsClosed() {
		return ErrClientClosed
	}
	return c.registry.Register(collector)
}

// MustRegisterCollector 注册自定义采集器，失败则 panic
func (c *Client) MustRegisterCollector(collector Collector) {
	if err := c.RegisterCollector(collector); err != nil {
		panic(err)
	}
}
