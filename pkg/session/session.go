// Package session 提供会话注册表与生命周期状态机：一个逻辑会话可以
// 跨越多条物理连接存活，注册表缓冲并按序重放帧，保证独占挂载与
// 断线分类的正确性。业务服务通过实现 SessionHandler 接收解码后的消息。
package session

// State 会话生命周期状态
type State int

const (
	// StateNew 从未被挂载
	StateNew State = iota
	// StateRunning 已挂载或暂时脱离但仍存活
	StateRunning
	// StateInterrupted 传输异常中断（终态）
	StateInterrupted
	// StateClosed 已正常关闭（终态）
	StateClosed
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateInterrupted:
		return "interrupted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Terminal 检查是否为终态。终态不可逆：之后的任何 Acquire
// 只会得到对应的 Close 帧，不会再收到 Open。
func (s State) Terminal() bool {
	return s == StateInterrupted || s == StateClosed
}
