package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_GetConfig(t *testing.T) {
	path := writeTempConfig(t, "listen: \":8080\"\nworkers: 4\n")

	w, err := NewWatcher[testConfig](path, "yaml", nil)
	require.NoError(t, err)

	cfg := w.GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 4, cfg.Workers)
}

func TestWatcher_Reload(t *testing.T) {
	path := writeTempConfig(t, "listen: \":8080\"\nworkers: 4\n")

	w, err := NewWatcher[testConfig](path, "yaml", nil)
	require.NoError(t, err)

	changed := make(chan *testConfig, 1)
	w.OnChange(func(cfg *testConfig) {
		select {
		case changed <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\nworkers: 8\n"), 0o644))

	assert.Eventually(t, func() bool {
		return w.GetConfig().Workers == 8
	}, 5*time.Second, 50*time.Millisecond)

	select {
	case cfg := <-changed:
		assert.Equal(t, ":9090", cfg.Listen)
	case <-time.After(time.Second):
		t.Fatal("change callback not invoked")
	}
}
