package session

import (
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// Record 单个会话的服务端状态：标识、生命周期状态与待投递帧缓冲。
// 每个 SessionId 只创建一次，跨越传输端的挂载/脱离循环持续存在。
// 被挂载期间 Record 的所有权整体移交给传输端，注册表不保留别名，
// 传输端在 Release 时交还，由此保证单写者纪律。
type Record struct {
	sid string

	// State 生命周期状态。挂载期间由持有 Record 的传输端迁移，
	// Release 后由注册表保存。
	State State

	// buffer 脱离期间待投递的帧，FIFO，插入顺序即投递顺序
	buffer []protocol.Frame
}

// NewRecord 创建新的会话记录，初始状态为 StateNew。
func NewRecord(sid string) *Record {
	return &Record{sid: sid, State: StateNew}
}

// SID 返回会话标识
func (r *Record) SID() string {
	return r.sid
}

// Add 追加一帧到缓冲尾部
func (r *Record) Add(f protocol.Frame) {
	r.buffer = append(r.buffer, f)
}

// Pop 弹出缓冲头部的帧。弹出即消费：发送失败也不会重新入队。
func (r *Record) Pop() (protocol.Frame, bool) {
	if len(r.buffer) == 0 {
		return protocol.Frame{}, false
	}
	f := r.buffer[0]
	r.buffer = r.buffer[1:]
	return f, true
}

// Len 返回缓冲中的帧数量
func (r *Record) Len() int {
	return len(r.buffer)
}

// Close 标记会话已正常关闭。终态不再迁移。
func (r *Record) Close() {
	if !r.State.Terminal() {
		r.State = StateClosed
	}
}

// Interrupt 标记会话异常中断。终态不再迁移。
func (r *Record) Interrupt() {
	if !r.State.Terminal() {
		r.State = StateInterrupted
	}
}
