package handler

import (
	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// CloseHandler 会话一打开就下发关闭帧，用于验证客户端的关闭处理
type CloseHandler struct {
	sender Sender
	log    logger.Logger
}

func (h *CloseHandler) OnOpened(sid string) {
	h.sender.Send(sid, protocol.Close(protocol.CodeGoAway))
}

func (h *CloseHandler) OnMessage(sid string, payload string) {
	// 关闭前到达的负载直接丢弃
}

func (h *CloseHandler) OnClosed(sid string) {
	h.log.Debug("session closed", "sid", sid)
}
