package session

import (
	"context"
	"sync"

	"github.com/lk2023060901/xsockjs/pkg/logger"
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// Registry 会话注册表接口。传输端只通过这四类操作与会话状态交互，
// 所有状态迁移由注册表串行执行。
type Registry interface {
	// Acquire 查找或创建 sid 对应的 Record，绑定 recipient 为新的帧接收端。
	// 成功时返回 Record（所有权移交调用方）；recipient 上的第一个条目
	// 必定是 Ready 信号，之后才是实时帧。
	// 已有传输端挂载时返回 ErrSessionBusy；注册表停止后返回 ErrRegistryUnavailable。
	Acquire(ctx context.Context, sid string, recipient chan ChannelItem) (*Record, error)

	// Release 解绑当前接收端并交还 Record。Record 已解绑时无副作用。
	Release(rec *Record)

	// Send 向单个会话投递一帧：已挂载则转发给接收端，脱离中则入缓冲。
	Send(sid string, frame protocol.Frame)

	// Broadcast 向所有存活会话投递一帧，语义同 Send。
	Broadcast(frame protocol.Frame)

	// Deliver 将解码后的客户端负载转交给 sid 的 SessionHandler。
	// 未知 sid 为空操作；投递目标是处理器而非传输端。
	Deliver(sid string, payloads []string)
}

// 注册表命令。邮箱逐条处理，同一 sid 的操作天然串行。
type acquireCmd struct {
	sid       string
	recipient chan ChannelItem
	reply     chan acquireReply
}

type acquireReply struct {
	rec *Record
	err error
}

type releaseCmd struct {
	rec *Record
}

type sendCmd struct {
	sid   string
	frame protocol.Frame
}

type broadcastCmd struct {
	frame protocol.Frame
}

type deliverCmd struct {
	sid      string
	payloads []string
}

type countCmd struct {
	reply chan int
}

// 处理器事件类型
type handlerEventKind int

const (
	evtOpened handlerEventKind = iota
	evtMessage
	evtClosed
)

type handlerEvent struct {
	kind    handlerEventKind
	payload string
}

// entry 注册表内部的会话条目。rec 为 nil 表示 Record 已被传输端取走，
// 此时 pump 持有接收端并负责出站投递。
type entry struct {
	sid            string
	rec            *Record
	pump           *recipientPump
	handler        SessionHandler
	events         chan handlerEvent
	closedNotified bool
}

// BaseRegistry 基于单邮箱 goroutine 的注册表实现。
// 邮箱循环是所有会话状态的唯一序列化点，不依赖外部锁即可
// 保证独占挂载与帧顺序不变式。
type BaseRegistry struct {
	config  *Config
	log     logger.Logger
	factory HandlerFactory

	cmds     chan interface{}
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	handlerWG sync.WaitGroup
}

var _ Registry = (*BaseRegistry)(nil)

// NewBaseRegistry 创建注册表并启动邮箱循环。
// factory 为 nil 时新会话使用 NopSessionHandler。
func NewBaseRegistry(cfg *Config, factory HandlerFactory, log logger.Logger) (*BaseRegistry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		factory = func(sid string) SessionHandler { return &NopSessionHandler{} }
	}
	if log == nil {
		log = logger.NewNoop()
	}

	r := &BaseRegistry{
		config:  cfg,
		log:     log,
		factory: factory,
		cmds:    make(chan interface{}, cfg.MailboxSize),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.run()
	return r, nil
}

// Acquire 实现 Registry 接口。ctx 只约束命令的受理，
// 命令一旦入队就会等待注册表应答。
func (r *BaseRegistry) Acquire(ctx context.Context, sid string, recipient chan ChannelItem) (*Record, error) {
	if recipient == nil {
		return nil, ErrNilRecipient
	}

	reply := make(chan acquireReply, 1)
	select {
	case r.cmds <- acquireCmd{sid: sid, recipient: recipient, reply: reply}:
	case <-r.done:
		return nil, ErrRegistryUnavailable
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rep := <-reply:
		return rep.rec, rep.err
	case <-r.done:
		return nil, ErrRegistryUnavailable
	}
}

// Release 实现 Registry 接口。
func (r *BaseRegistry) Release(rec *Record) {
	if rec == nil {
		return
	}
	select {
	case r.cmds <- releaseCmd{rec: rec}:
	case <-r.done:
	}
}

// Send 实现 Registry 接口。
func (r *BaseRegistry) Send(sid string, frame protocol.Frame) {
	select {
	case r.cmds <- sendCmd{sid: sid, frame: frame}:
	case <-r.done:
	}
}

// Broadcast 实现 Registry 接口。
func (r *BaseRegistry) Broadcast(frame protocol.Frame) {
	select {
	case r.cmds <- broadcastCmd{frame: frame}:
	case <-r.done:
	}
}

// Deliver 实现 Registry 接口。
func (r *BaseRegistry) Deliver(sid string, payloads []string) {
	if len(payloads) == 0 {
		return
	}
	select {
	case r.cmds <- deliverCmd{sid: sid, payloads: payloads}:
	case <-r.done:
	}
}

// Count 返回当前会话数量（含终态未回收的会话）。
func (r *BaseRegistry) Count() int {
	reply := make(chan int, 1)
	select {
	case r.cmds <- countCmd{reply: reply}:
	case <-r.done:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-r.done:
		return 0
	}
}

// Stop 停止注册表：向所有已挂载的会话广播 Close(GoAway)，
// 关闭全部会话并等待处理器回调结束。之后的 Acquire 返回
// ErrRegistryUnavailable，其余操作被丢弃。
func (r *BaseRegistry) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stopCh) })
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run 邮箱循环，注册表状态的唯一写者。
func (r *BaseRegistry) run() {
	defer close(r.done)

	entries := make(map[string]*entry)
	for {
		select {
		case cmd := <-r.cmds:
			switch c := cmd.(type) {
			case acquireCmd:
				r.handleAcquire(entries, c)
			case releaseCmd:
				r.handleRelease(entries, c)
			case sendCmd:
				if e, ok := entries[c.sid]; ok {
					r.forward(e, c.frame)
				} else {
					r.log.Debug("send to unknown session", "sid", c.sid)
				}
			case broadcastCmd:
				for _, e := range entries {
					r.forward(e, c.frame)
				}
			case deliverCmd:
				r.handleDeliver(entries, c)
			case countCmd:
				c.reply <- len(entries)
			}
		case <-r.stopCh:
			r.shutdown(entries)
			r.handlerWG.Wait()
			return
		}
	}
}

func (r *BaseRegistry) handleAcquire(entries map[string]*entry, c acquireCmd) {
	e, ok := entries[c.sid]
	if !ok {
		e = &entry{
			sid:     c.sid,
			rec:     NewRecord(c.sid),
			handler: r.factory(c.sid),
			events:  make(chan handlerEvent, r.config.EventChannelSize),
		}
		entries[c.sid] = e
		r.handlerWG.Add(1)
		go r.runHandler(e)
		r.notify(e, handlerEvent{kind: evtOpened})
		r.log.Debug("session created", "sid", c.sid)
	}

	if e.rec == nil {
		c.reply <- acquireReply{err: ErrSessionBusy}
		return
	}

	// Ready 必须是帧流上的第一个条目，先于任何实时帧入队
	select {
	case c.recipient <- ReadyItem():
	default:
		c.reply <- acquireReply{err: ErrRecipientBlocked}
		return
	}

	rec := e.rec
	e.rec = nil
	e.pump = newRecipientPump(c.recipient)
	r.log.Debug("session acquired", "sid", c.sid, "state", rec.State.String())
	c.reply <- acquireReply{rec: rec}
}

func (r *BaseRegistry) handleRelease(entries map[string]*entry, c releaseCmd) {
	e, ok := entries[c.rec.SID()]
	if !ok {
		return
	}
	if e.rec != nil {
		// 已解绑，无副作用
		return
	}

	e.rec = c.rec
	if e.pump != nil {
		e.pump.abort()
		e.pump = nil
	}
	r.log.Debug("session released", "sid", e.sid, "state", c.rec.State.String())

	if c.rec.State.Terminal() {
		r.notifyClosed(e)
	}
}

func (r *BaseRegistry) handleDeliver(entries map[string]*entry, c deliverCmd) {
	e, ok := entries[c.sid]
	if !ok {
		r.log.Debug("deliver to unknown session", "sid", c.sid)
		return
	}
	if e.closedNotified {
		return
	}
	for _, p := range c.payloads {
		r.notify(e, handlerEvent{kind: evtMessage, payload: p})
	}
}

// forward 把一帧交给会话：已挂载经出站队列转发给接收端，
// 脱离且未终结则入缓冲。两条路径都不丢帧。
func (r *BaseRegistry) forward(e *entry, frame protocol.Frame) {
	if e.rec == nil {
		e.pump.push(FrameItem(frame))
		return
	}
	if !e.rec.State.Terminal() {
		e.rec.Add(frame)
	}
}

// notify 向会话的处理器队列投递事件，队列满时丢弃并告警。
func (r *BaseRegistry) notify(e *entry, evt handlerEvent) {
	if e.closedNotified {
		return
	}
	select {
	case e.events <- evt:
	default:
		r.log.Warn("handler event queue full, event dropped", "sid", e.sid)
	}
}

// notifyClosed 投递终态回调并关闭事件队列，只执行一次。
func (r *BaseRegistry) notifyClosed(e *entry) {
	if e.closedNotified {
		return
	}
	select {
	case e.events <- handlerEvent{kind: evtClosed}:
	default:
		r.log.Warn("handler event queue full on close", "sid", e.sid)
	}
	e.closedNotified = true
	close(e.events)
}

// shutdown 停机：已挂载的会话收到 Close(GoAway)，全部记录标记关闭。
// 出站队列先排空再退出，接收端已消失的队列不阻塞停机。
func (r *BaseRegistry) shutdown(entries map[string]*entry) {
	goAway := protocol.Close(protocol.CodeGoAway)
	for _, e := range entries {
		if e.rec == nil {
			e.pump.push(FrameItem(goAway))
			e.pump.close()
		} else {
			e.rec.Close()
		}
		r.notifyClosed(e)
	}
}

// runHandler 会话私有的处理器循环，保证同一会话的回调串行执行。
func (r *BaseRegistry) runHandler(e *entry) {
	defer r.handlerWG.Done()
	for evt := range e.events {
		switch evt.kind {
		case evtOpened:
			e.handler.OnOpened(e.sid)
		case evtMessage:
			e.handler.OnMessage(e.sid, evt.payload)
		case evtClosed:
			e.handler.OnClosed(e.sid)
		}
	}
}
