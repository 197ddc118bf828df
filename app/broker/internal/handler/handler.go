// Package handler 提供内置的会话应用处理器。
package handler

import (
	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
	"github.com/lk2023060901/xsockjs/pkg/session"
)

// Sender 向会话推送帧的能力，由会话注册表提供
type Sender interface {
	Send(sid string, f protocol.Frame)
}

// 内置处理器名称
const (
	KindEcho  = "echo"
	KindClose = "close"
)

// NewFactory 按名称构建处理器工厂。sender 延迟求值，
// 允许注册表与工厂互相引用。未知名称回退为 echo。
func NewFactory(kind string, sender func() Sender, l logger.Logger) session.HandlerFactory {
	if l == nil {
		l = logger.NewNoop()
	}
	return func(sid string) session.SessionHandler {
		switch kind {
		case KindClose:
			return &CloseHandler{sender: sender(), log: l}
		default:
			return &EchoHandler{sender: sender(), log: l}
		}
	}
}
