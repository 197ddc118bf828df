package session

import "errors"

var (
	// ErrSessionBusy 会话已被其他传输端挂载
	ErrSessionBusy = errors.New("session: already acquired by another transport")

	// ErrRegistryUnavailable 注册表已停止，无法受理操作
	ErrRegistryUnavailable = errors.New("session: registry unavailable")

	// ErrNilRecipient Acquire 未提供接收通道
	ErrNilRecipient = errors.New("session: nil recipient channel")

	// ErrRecipientBlocked 接收通道无法容纳 Ready 信号
	ErrRecipientBlocked = errors.New("session: recipient channel blocked")
)
