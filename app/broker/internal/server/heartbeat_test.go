package server

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

type countingBroadcaster struct {
	n atomic.Int64
}

func (b *countingBroadcaster) Broadcast(f protocol.Frame) {
	if f.Type == protocol.FrameHeartbeat {
		b.n.Add(1)
	}
}

func TestHeartbeater_Broadcasts(t *testing.T) {
	target := &countingBroadcaster{}
	hb := NewHeartbeater(10*time.Millisecond, target, nil)
	require.NoError(t, hb.Start())
	defer func() { _ = hb.Stop() }()

	assert.Eventually(t, func() bool {
		return target.n.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestHeartbeater_SetInterval(t *testing.T) {
	target := &countingBroadcaster{}
	hb := NewHeartbeater(time.Hour, target, nil)
	require.NoError(t, hb.Start())
	defer func() { _ = hb.Stop() }()

	// 间隔从一小时降到毫秒级后广播立即开始
	hb.SetInterval(10 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return target.n.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	// 非正值被忽略，广播不中断
	hb.SetInterval(0)
	before := target.n.Load()
	assert.Eventually(t, func() bool {
		return target.n.Load() > before
	}, time.Second, 5*time.Millisecond)
}
