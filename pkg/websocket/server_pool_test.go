package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", extractIP("10.0.0.1:52341"))
	assert.Equal(t, "::1", extractIP("[::1]:8080"))
	assert.Equal(t, "nohost", extractIP("nohost"))
}

func TestSessionIDFallback(t *testing.T) {
	a := SessionID("/short")
	b := SessionID("/short")
	// 退化路径每次生成不同标识
	assert.NotEqual(t, a, b)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.ReadBufferSize = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultServerConfig()
	cfg.Session = nil
	assert.NoError(t, cfg.Validate())
	assert.NotNil(t, cfg.Session)
}
