package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmordasov/metagrid/internal/engine"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, engine.DefaultSize, cfg.Game.Size)
	assert.True(t, cfg.UI.ShowHelp)
	assert.True(t, cfg.Storage.Autosave)
	assert.NotEmpty(t, cfg.Storage.DBPath)
}

func TestNormalizeClampsSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero becomes default", in: 0, want: engine.DefaultSize},
		{name: "negative becomes default", in: -2, want: engine.DefaultSize},
		{name: "valid passes", in: 4, want: 4},
		{name: "max passes", in: MaxSize, want: MaxSize},
		{name: "oversized clamps to max", in: 42, want: MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Game.Size = tt.in
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Game.Size)
		})
	}
}

func TestNormalizeRestoresDBPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.DBPath = ""
	cfg.Normalize()
	assert.Equal(t, Default().Storage.DBPath, cfg.Storage.DBPath)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
game:
  size: 5
ui:
  show_help: false
storage:
  db_path: /tmp/other.db
  autosave: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.Size)
	assert.False(t, cfg.UI.ShowHelp)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.DBPath)
	assert.False(t, cfg.Storage.Autosave)
}

func TestLoadCustomPathNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  size: 99\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MaxSize, cfg.Game.Size)
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [not: valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
