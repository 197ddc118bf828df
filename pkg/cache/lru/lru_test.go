package lru

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxSize int, ttl time.Duration) *LRU[string, int] {
	t.Helper()
	c := New[string, int](&Config{
		MaxSize:         maxSize,
		DefaultTTL:      ttl,
		CleanupInterval: 10 * time.Millisecond,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLRU_SetGetDelete(t *testing.T) {
	cache := newTestCache(t, 100, time.Minute)

	cache.Set("ip:10.0.0.1", 1)
	v, ok := cache.Get("ip:10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = cache.Get("ip:10.0.0.2")
	assert.False(t, ok)

	cache.Delete("ip:10.0.0.1")
	_, ok = cache.Get("ip:10.0.0.1")
	assert.False(t, ok)
}

func TestLRU_LenAndClear(t *testing.T) {
	cache := newTestCache(t, 100, time.Minute)

	cache.Set("a", 1)
	cache.Set("b", 2)
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTestCache(t, 2, time.Minute)

	cache.Set("ip:10.0.0.1", 1)
	cache.Set("ip:10.0.0.2", 2)

	// 访问 1 号使其成为最近使用，随后的插入淘汰 2 号
	_, _ = cache.Get("ip:10.0.0.1")
	cache.Set("ip:10.0.0.3", 3)

	_, ok := cache.Get("ip:10.0.0.2")
	assert.False(t, ok)
	_, ok = cache.Get("ip:10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())
}

func TestLRU_TTLExpiry(t *testing.T) {
	cache := newTestCache(t, 100, 30*time.Millisecond)

	cache.Set("ip:10.0.0.1", 1)
	_, ok := cache.Get("ip:10.0.0.1")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := cache.Get("ip:10.0.0.1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestLRU_ZeroTTLNeverExpires(t *testing.T) {
	cache := newTestCache(t, 100, 0)

	cache.Set("ip:10.0.0.1", 1)
	time.Sleep(50 * time.Millisecond)

	v, ok := cache.Get("ip:10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRU_GetOrCreate(t *testing.T) {
	cache := newTestCache(t, 100, time.Minute)

	calls := 0
	limiter := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, cache.GetOrCreate("ip:10.0.0.1", limiter))
	assert.Equal(t, 42, cache.GetOrCreate("ip:10.0.0.1", limiter))
	// 同一键只构造一次
	assert.Equal(t, 1, calls)
}

func TestLRU_OnEvictCallback(t *testing.T) {
	evicted := make(map[string]int)
	cache := New[string, int](
		&Config{
			MaxSize:         2,
			DefaultTTL:      time.Minute,
			CleanupInterval: time.Second,
		},
		WithOnEvict(func(key string, value int) {
			evicted[key] = value
		}),
	)
	defer cache.Close()

	cache.Set("ip:10.0.0.1", 1)
	cache.Set("ip:10.0.0.2", 2)
	cache.Set("ip:10.0.0.3", 3)

	require.Len(t, evicted, 1)
	assert.Equal(t, 1, evicted["ip:10.0.0.1"])
}
