package server

import (
	"time"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// Broadcaster 向全部会话推送帧的能力
type Broadcaster interface {
	Broadcast(f protocol.Frame)
}

// Heartbeater 周期性向所有会话广播心跳帧。
// 挂载中的会话立即收到，脱离中的会话入缓冲等待回放。
type Heartbeater struct {
	interval time.Duration
	target   Broadcaster
	logger   logger.Logger

	updateCh chan time.Duration
	stopCh   chan struct{}
	done     chan struct{}
}

// NewHeartbeater 创建心跳组件，interval 非正值时使用 25 秒
func NewHeartbeater(interval time.Duration, target Broadcaster, l logger.Logger) *Heartbeater {
	if interval <= 0 {
		interval = 25 * time.Second
	}
	if l == nil {
		l = logger.NewNoop()
	}
	return &Heartbeater{
		interval: interval,
		target:   target,
		logger:   l.Named("heartbeat"),
		updateCh: make(chan time.Duration, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetInterval 调整广播间隔，下一拍起生效。非正值被忽略。
func (h *Heartbeater) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case h.updateCh <- d:
	case <-h.stopCh:
	}
}

// Start 启动心跳循环
func (h *Heartbeater) Start() error {
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		h.logger.Info("heartbeat started", "interval", h.interval.String())
		for {
			select {
			case <-ticker.C:
				h.target.Broadcast(protocol.Heartbeat())
			case d := <-h.updateCh:
				ticker.Reset(d)
				h.logger.Info("heartbeat interval updated", "interval", d.String())
			case <-h.stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop 停止心跳循环
func (h *Heartbeater) Stop() error {
	close(h.stopCh)
	<-h.done
	h.logger.Info("heartbeat stopped")
	return nil
}
