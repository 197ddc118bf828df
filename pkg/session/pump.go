package session

import "sync"

// recipientPump 挂载期间的出站队列。邮箱循环只做入队，
// 专属 goroutine 负责向接收端投递，慢接收端不会阻塞邮箱，
// 帧也不会因通道占满而丢失。
type recipientPump struct {
	recipient chan<- ChannelItem

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []ChannelItem
	closed bool

	abortCh   chan struct{}
	abortOnce sync.Once
}

func newRecipientPump(recipient chan<- ChannelItem) *recipientPump {
	p := &recipientPump{
		recipient: recipient,
		abortCh:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// push 入队一个条目。关闭后的入队被丢弃。
func (p *recipientPump) push(item ChannelItem) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, item)
	p.mu.Unlock()
	p.cond.Signal()
}

// close 拒绝后续入队，已入队的条目继续投递完再退出
func (p *recipientPump) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Signal()
}

// abort 立即终止投递并丢弃剩余队列。解绑接收端时使用，
// 此时记录已回到注册表，终态语义下剩余帧不再有去处。
func (p *recipientPump) abort() {
	p.mu.Lock()
	p.closed = true
	p.queue = nil
	p.mu.Unlock()
	p.abortOnce.Do(func() { close(p.abortCh) })
	p.cond.Signal()
}

func (p *recipientPump) run() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		item := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		select {
		case p.recipient <- item:
		case <-p.abortCh:
			return
		}
	}
}
