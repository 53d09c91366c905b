package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Confirmations)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 1.2, cfg.Zoom.Step)
	assert.Equal(t, 0.1, cfg.Zoom.WheelStep)
	assert.Zero(t, cfg.History.Limit)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	assert.Equal(t, "/tmp/test-xdg/flowcanvas", ConfigDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "flowcanvas"), ConfigDir())
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.History.Limit = 50
	cfg.Theme = "light"
	cfg.Confirmations = false
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.History.Limit)
	assert.Equal(t, "light", loaded.Theme)
	assert.False(t, loaded.Confirmations)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
theme = "neon"
save_directory = "~/charts"

[zoom]
step = 0.5
wheel_step = 2

[history]
limit = -3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 1.2, cfg.Zoom.Step)
	assert.Equal(t, 0.1, cfg.Zoom.WheelStep)
	assert.Zero(t, cfg.History.Limit)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "charts"), cfg.SaveDirectory)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = = ="), 0o644))

	cfg, err := LoadFrom(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestGetSavePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "chart.yaml", cfg.GetSavePath("chart.yaml"))

	dir := filepath.Join(t.TempDir(), "saves")
	cfg.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "chart.yaml"), cfg.GetSavePath("chart.yaml"))
	assert.DirExists(t, dir)
	assert.Equal(t, "/abs/chart.yaml", cfg.GetSavePath("/abs/chart.yaml"))
	assert.Equal(t, "sub/chart.yaml", cfg.GetSavePath("sub/chart.yaml"))
}
