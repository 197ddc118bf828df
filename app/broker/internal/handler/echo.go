package handler

import (
	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// EchoHandler 把收到的每条负载原样回发给同一会话
type EchoHandler struct {
	sender Sender
	log    logger.Logger
}

func (h *EchoHandler) OnOpened(sid string) {
	h.log.Debug("session opened", "sid", sid)
}

func (h *EchoHandler) OnMessage(sid string, payload string) {
	h.sender.Send(sid, protocol.Message(payload))
}

func (h *EchoHandler) OnClosed(sid string) {
	h.log.Debug("session closed", "sid", sid)
}
