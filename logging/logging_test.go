package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.False(t, cfg.Development)
}
