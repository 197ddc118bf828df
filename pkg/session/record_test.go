package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

func TestRecord_Lifecycle(t *testing.T) {
	rec := NewRecord("abc123")
	assert.Equal(t, "abc123", rec.SID())
	assert.Equal(t, StateNew, rec.State)
	assert.False(t, rec.State.Terminal())

	rec.State = StateRunning
	assert.False(t, rec.State.Terminal())

	rec.Close()
	assert.Equal(t, StateClosed, rec.State)
	assert.True(t, rec.State.Terminal())

	// 终态不再迁移
	rec.Interrupt()
	assert.Equal(t, StateClosed, rec.State)
}

func TestRecord_InterruptIsTerminal(t *testing.T) {
	rec := NewRecord("s1")
	rec.State = StateRunning
	rec.Interrupt()
	assert.Equal(t, StateInterrupted, rec.State)

	rec.Close()
	assert.Equal(t, StateInterrupted, rec.State)
}

func TestRecord_BufferFIFO(t *testing.T) {
	rec := NewRecord("s1")
	rec.Add(protocol.Message("one"))
	rec.Add(protocol.Message("two"))
	rec.Add(protocol.Heartbeat())
	require.Equal(t, 3, rec.Len())

	f, ok := rec.Pop()
	require.True(t, ok)
	assert.Equal(t, "one", f.Payload)

	f, ok = rec.Pop()
	require.True(t, ok)
	assert.Equal(t, "two", f.Payload)

	f, ok = rec.Pop()
	require.True(t, ok)
	assert.Equal(t, protocol.FrameHeartbeat, f.Type)

	_, ok = rec.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, rec.Len())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "new", StateNew.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "interrupted", StateInterrupted.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unknown", State(42).String())
}
