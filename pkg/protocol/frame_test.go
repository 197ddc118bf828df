package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_EncodeText(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"heartbeat", Heartbeat(), "h"},
		{"open", Open(), "o"},
		{"message", Message("hello"), `a["hello"]`},
		{"message with quotes", Message(`say "hi"`), `a["say \"hi\""]`},
		{"empty message", Message(""), `a[""]`},
		{"batch", MessageBatch([]string{"a", "b"}), `a["a","b"]`},
		{"empty batch", MessageBatch(nil), `a[]`},
		{"close go away", Close(CodeGoAway), `c[3000,"Go away!"]`},
		{"close interrupted", Close(CodeInterrupted), `c[1002,"Connection interrupted"]`},
		{"close acquired", Close(CodeAcquired), `c[2010,"Another connection still open"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.frame.EncodeText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrame_EncodeText_Blob(t *testing.T) {
	_, err := Frame{Type: FrameMessageBlob, Blob: []byte{0x01}}.EncodeText()
	assert.ErrorIs(t, err, ErrFrameNotEncodable)
}

func TestFrame_IsClose(t *testing.T) {
	assert.True(t, Close(CodeGoAway).IsClose())
	assert.False(t, Open().IsClose())
	assert.False(t, Heartbeat().IsClose())
}

func TestFrameType_String(t *testing.T) {
	assert.Equal(t, "heartbeat", FrameHeartbeat.String())
	assert.Equal(t, "open", FrameOpen.String())
	assert.Equal(t, "close", FrameClose.String())
	assert.Equal(t, "unknown", FrameType(99).String())
}
