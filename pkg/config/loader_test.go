package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Listen  string `mapstructure:"listen" validate:"required"`
	Workers int    `mapstructure:"workers" validate:"min=1"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeTempConfig(t, "listen: \":8080\"\nworkers: 4\n")

	loader := NewLoader()
	require.NoError(t, loader.LoadFile(path, "yaml"))

	var cfg testConfig
	require.NoError(t, loader.Unmarshal(&cfg))
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoader_FileNotFound(t *testing.T) {
	loader := NewLoader()
	err := loader.LoadFile("/nonexistent/config.yaml", "yaml")
	assert.Error(t, err)
}

func TestLoad_Generic(t *testing.T) {
	path := writeTempConfig(t, "listen: \":9000\"\nworkers: 2\n")

	cfg, err := Load[testConfig](path, "yaml")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 2, cfg.Workers)
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(&testConfig{Listen: ":8080", Workers: 1}))
	})

	t.Run("missing required", func(t *testing.T) {
		err := v.Validate(&testConfig{Workers: 1})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("below min", func(t *testing.T) {
		err := v.Validate(&testConfig{Listen: ":8080", Workers: 0})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("nil config", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(nil), ErrNilConfig)
	})
}
