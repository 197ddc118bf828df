package lru

import (
	"container/list"
	"sync"
	"time"
)

// Config LRU 配置
type Config struct {
	// MaxSize 条目数上限，超出时淘汰最久未用的
	MaxSize int
	// DefaultTTL 默认存活时间
	DefaultTTL time.Duration
	// CleanupInterval 后台过期扫描间隔
	CleanupInterval time.Duration
}

// item 链表节点负载，expiry 为零值表示永不过期
type item[K comparable, V any] struct {
	key    K
	value  V
	expiry time.Time
}

func (it *item[K, V]) expired(now time.Time) bool {
	return !it.expiry.IsZero() && now.After(it.expiry)
}

// LRU 带 TTL 的 LRU 缓存。链表头是最近使用端，
// 过期条目由后台协程周期回收，读路径也会顺手剔除。
type LRU[K comparable, V any] struct {
	cfg     *Config
	onEvict func(key K, value V)

	mu    sync.Mutex
	order *list.List
	index map[K]*list.Element

	stopCh chan struct{}
	done   chan struct{}
}

// Option LRU 配置选项
type Option[K comparable, V any] func(*LRU[K, V])

// WithOnEvict 设置淘汰回调，删除与过期也会触发
func WithOnEvict[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// New 创建 LRU 缓存并启动后台清理
func New[K comparable, V any](cfg *Config, opts ...Option[K, V]) *LRU[K, V] {
	c := &LRU[K, V]{
		cfg:    cfg,
		order:  list.New(),
		index:  make(map[K]*list.Element),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupLoop()
	return c
}

func (c *LRU[K, V]) cleanupLoop() {
	defer close(c.done)

	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

// sweep 从冷端向热端扫描，回收已过期条目
func (c *LRU[K, V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*item[K, V]).expired(now) {
			c.evict(elem)
		}
		elem = prev
	}
}

// Get 获取值并将条目提升到热端
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	it := elem.Value.(*item[K, V])
	if it.expired(time.Now()) {
		c.evict(elem)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return it.value, true
}

// Set 以默认 TTL 写入
func (c *LRU[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.cfg.DefaultTTL)
}

// SetWithTTL 以指定 TTL 写入，已存在则覆盖并刷新
func (c *LRU[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value, ttl)
}

// GetOrCreate 命中直接返回，未命中在锁内调用 create 并写入。
// create 不能再进入本缓存，否则死锁。
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		it := elem.Value.(*item[K, V])
		if !it.expired(time.Now()) {
			c.order.MoveToFront(elem)
			return it.value
		}
		c.evict(elem)
	}

	value := create()
	c.store(key, value, c.cfg.DefaultTTL)
	return value
}

// store 写入并按容量淘汰，调用方持锁
func (c *LRU[K, V]) store(key K, value V, ttl time.Duration) {
	var expiry time.Time
	if ttl > 0 {
		expiry = time.Now().Add(ttl)
	}

	if elem, ok := c.index[key]; ok {
		it := elem.Value.(*item[K, V])
		it.value = value
		it.expiry = expiry
		c.order.MoveToFront(elem)
		return
	}

	c.index[key] = c.order.PushFront(&item[K, V]{key: key, value: value, expiry: expiry})

	for c.cfg.MaxSize > 0 && c.order.Len() > c.cfg.MaxSize {
		if tail := c.order.Back(); tail != nil {
			c.evict(tail)
		}
	}
}

// Delete 删除条目
func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.evict(elem)
	}
}

// Len 当前条目数
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear 清空全部条目，不触发淘汰回调
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.index = make(map[K]*list.Element)
}

// Close 停止后台清理，缓存本身仍可读写
func (c *LRU[K, V]) Close() error {
	close(c.stopCh)
	<-c.done
	return nil
}

// evict 摘除条目并触发回调，调用方持锁
func (c *LRU[K, V]) evict(elem *list.Element) {
	c.order.Remove(elem)
	it := elem.Value.(*item[K, V])
	delete(c.index, it.key)
	if c.onEvict != nil {
		c.onEvict(it.key, it.value)
	}
}
