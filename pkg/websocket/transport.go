// pkg/websocket/transport.go
package websocket

import (
	"context"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
	"github.com/lk2023060901/xsockjs/pkg/session"
)

// Transport 单条 WebSocket 连接的传输端，一次只挂载一个会话记录。
// 两阶段握手：Acquire 应答后先按序回放积压帧，收到 Ready 信号
// 才进入实时转发模式，避免实时帧抢在缓冲历史之前发出。
type Transport struct {
	conn     *Connection
	registry session.Registry
	sid      string
	log      logger.Logger
	metrics  *ServerMetrics

	// mu 保护 rec 与转发标志。rec 由注册表移交，挂载期间本传输端独占
	mu    sync.Mutex
	rec   *session.Record
	ready bool

	recipient chan session.ChannelItem
	recvSize  int

	stopCh      chan struct{}
	releaseOnce sync.Once
}

// NewTransport 创建传输端。recvSize 为帧流通道大小。
func NewTransport(conn *Connection, registry session.Registry, sid string, recvSize int, log logger.Logger, metrics *ServerMetrics) *Transport {
	if log == nil {
		log = logger.NewNoop()
	}
	if recvSize <= 0 {
		recvSize = session.DefaultConfig().RecvChannelSize
	}
	return &Transport{
		conn:     conn,
		registry: registry,
		sid:      sid,
		log:      log,
		metrics:  metrics,
		recvSize: recvSize,
		stopCh:   make(chan struct{}),
	}
}

// SID 返回目标会话标识
func (t *Transport) SID() string {
	return t.sid
}

// Run 驱动传输端直到连接终止。Acquire 往返是唯一的等待点，
// 阻塞期间本连接不处理任何入站数据，不影响其他会话。
func (t *Transport) Run(ctx context.Context) {
	defer t.release()

	t.recipient = make(chan session.ChannelItem, t.recvSize)
	rec, err := t.registry.Acquire(ctx, t.sid, t.recipient)
	if err != nil {
		t.sendAcquireError(err)
		return
	}

	switch rec.State {
	case session.StateInterrupted:
		// 终态会话：应答关闭帧后立刻交还，状态不再迁移
		t.writeClose(rec, protocol.CodeInterrupted)
		t.registry.Release(rec)
		return
	case session.StateClosed:
		t.writeClose(rec, protocol.CodeGoAway)
		t.registry.Release(rec)
		return
	case session.StateNew:
		t.mu.Lock()
		t.rec = rec
		ok := t.writeFrameLocked(protocol.Open())
		if ok {
			rec.State = session.StateRunning
			ok = t.flushBufferedLocked()
		}
		t.mu.Unlock()
		if !ok {
			t.markInterrupted()
			return
		}
	default:
		// 重新挂载：只回放积压，不再发送 Open
		t.mu.Lock()
		t.rec = rec
		ok := t.flushBufferedLocked()
		t.mu.Unlock()
		if !ok {
			t.markInterrupted()
			return
		}
	}

	go t.writePump()
	t.readPump()
}

// writePump 消费注册表推送的帧流
func (t *Transport) writePump() {
	for {
		select {
		case item := <-t.recipient:
			switch item.Kind {
			case session.ItemReady:
				t.mu.Lock()
				ok := t.flushBufferedLocked()
				if ok {
					t.ready = true
				}
				t.mu.Unlock()
				if !ok {
					t.markInterrupted()
					t.release()
					return
				}
			case session.ItemFrame:
				t.mu.Lock()
				if !t.ready {
					// Ready 之前收到的实时帧归入缓冲，由回放统一投递
					if t.rec != nil {
						t.rec.Add(item.Frame)
					}
					t.mu.Unlock()
					continue
				}
				ok := t.writeFrameLocked(item.Frame)
				t.mu.Unlock()
				if !ok {
					t.markInterrupted()
					t.release()
					return
				}
			}
		case <-t.stopCh:
			return
		}
	}
}

// readPump 消费入站线路数据，阻塞直到连接终止
func (t *Transport) readPump() {
	for {
		msgType, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				// 对端正常关闭
				t.markClosed()
			}
			return
		}

		switch msgType {
		case websocket.TextMessage:
			payloads, derr := protocol.DecodePayloads(data)
			if derr != nil {
				// 非法负载：关闭连接并标记中断，负载不会到达处理器
				t.log.Warn("malformed payload, closing session", "sid", t.sid)
				_ = t.conn.WriteCloseFrame(protocol.CodeInvalidPayload.Num, protocol.CodeInvalidPayload.Reason)
				t.markInterrupted()
				return
			}
			if len(payloads) == 0 {
				continue
			}
			if t.metrics != nil {
				t.metrics.OnPayloadsReceived(len(payloads))
			}
			t.registry.Deliver(t.sid, payloads)
		case websocket.BinaryMessage:
			// 二进制消息不转发给应用，连接保持打开
			t.log.Error("binary messages are not supported", "sid", t.sid)
		}
	}
}

// writeFrameLocked 编码并发送一帧，调用方持有 mu。
// 发送 Close 帧会先把记录标记为已关闭，传输失败也不影响终态。
func (t *Transport) writeFrameLocked(f protocol.Frame) bool {
	if f.IsClose() && t.rec != nil {
		t.rec.Close()
	}

	data, err := f.EncodeText()
	if err != nil {
		t.log.Error("frame not encodable, dropped", "sid", t.sid, "frame", f.Type.String())
		return true
	}

	if err := t.conn.WriteText(data); err != nil {
		t.log.Debug("websocket write error", "error", err, "sid", t.sid)
		return false
	}
	if t.metrics != nil {
		t.metrics.OnFrameSent(f.Type)
	}
	return true
}

// flushBufferedLocked 按序回放积压帧，调用方持有 mu。
// 弹出即消费：发送失败的帧不会重新入队。
func (t *Transport) flushBufferedLocked() bool {
	if t.rec == nil {
		return true
	}
	for {
		f, ok := t.rec.Pop()
		if !ok {
			return true
		}
		if !t.writeFrameLocked(f) {
			return false
		}
	}
}

// writeClose 发送关闭帧并标记记录。终态记录不再迁移。
func (t *Transport) writeClose(rec *session.Record, code protocol.CloseCode) {
	rec.Close()
	data, err := protocol.Close(code).EncodeText()
	if err != nil {
		return
	}
	if err := t.conn.WriteText(data); err != nil {
		t.log.Debug("websocket write error", "error", err, "sid", t.sid)
		return
	}
	if t.metrics != nil {
		t.metrics.OnFrameSent(protocol.FrameClose)
	}
}

// sendAcquireError 挂载失败应答：占用与不可用都映射为关闭帧
func (t *Transport) sendAcquireError(err error) {
	code := protocol.CodeInternalError
	if errors.Is(err, session.ErrSessionBusy) {
		code = protocol.CodeAcquired
	}
	data, encErr := protocol.Close(code).EncodeText()
	if encErr == nil {
		_ = t.conn.WriteText(data)
	}
	t.log.Debug("acquire failed", "sid", t.sid, "error", err)
}

// markInterrupted 把仍在运行的记录标记为中断
func (t *Transport) markInterrupted() {
	t.mu.Lock()
	if t.rec != nil {
		t.rec.Interrupt()
	}
	t.mu.Unlock()
}

// markClosed 把记录标记为正常关闭
func (t *Transport) markClosed() {
	t.mu.Lock()
	if t.rec != nil {
		t.rec.Close()
	}
	t.mu.Unlock()
}

// release 交还会话记录并关闭连接。所有终止路径都汇聚到这里，
// 恰好执行一次；重复调用无副作用。
func (t *Transport) release() {
	t.releaseOnce.Do(func() {
		close(t.stopCh)

		t.mu.Lock()
		rec := t.rec
		t.rec = nil
		t.mu.Unlock()

		if rec != nil {
			// 记录仍在运行说明连接不是被正常关闭的
			if rec.State == session.StateRunning {
				rec.Interrupt()
			}
			t.registry.Release(rec)
		}
		_ = t.conn.Close()
	})
}
