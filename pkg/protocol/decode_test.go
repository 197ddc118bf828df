package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayloads(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single bracketed", `["hello"]`, []string{"hello"}},
		{"multi bracketed", `["a","b","c"]`, []string{"a", "b", "c"}},
		{"bare string", `"hello"`, []string{"hello"}},
		{"array with leading space", ` ["x"]`, []string{"x"}},
		{"escaped content", `["line\nbreak"]`, []string{"line\nbreak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayloads([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePayloads_Ignored(t *testing.T) {
	// 空文本与退化形式被忽略且不报错
	for _, in := range []string{"", "[]", "["} {
		got, err := DecodePayloads([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Nil(t, got, "input %q", in)
	}
}

func TestDecodePayloads_Malformed(t *testing.T) {
	for _, in := range []string{
		`["unterminated`,
		`[1,2,3]`,
		`{"not":"array"}`,
		`not json`,
		`[{}]`,
	} {
		_, err := DecodePayloads([]byte(in))
		assert.ErrorIs(t, err, ErrMalformedPayload, "input %q", in)
	}
}
