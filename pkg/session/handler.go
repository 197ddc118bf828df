package session

// SessionHandler 会话事件处理器，由业务服务实现。
// 回调在每个会话私有的串行队列上执行，同一会话内保证顺序，
// 不同会话之间完全并发。回调内可以安全地调用注册表的 Send/Broadcast。
type SessionHandler interface {
	// OnOpened 会话首次建立回调
	OnOpened(sid string)

	// OnMessage 收到一条解码后的客户端负载
	OnMessage(sid string, payload string)

	// OnClosed 会话进入终态回调，之后不会再有其他回调
	OnClosed(sid string)
}

// HandlerFactory 为新会话创建处理器。Record 独占持有返回的实例。
type HandlerFactory func(sid string) SessionHandler

// NopSessionHandler 提供 SessionHandler 的空实现。
type NopSessionHandler struct{}

func (n *NopSessionHandler) OnOpened(sid string)                  {}
func (n *NopSessionHandler) OnMessage(sid string, payload string) {}
func (n *NopSessionHandler) OnClosed(sid string)                  {}

var _ SessionHandler = (*NopSessionHandler)(nil)
