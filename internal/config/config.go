package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds flowcanvas configuration.
type Config struct {
	SaveDirectory string        `toml:"save_directory"`
	Confirmations bool          `toml:"confirmations"`
	Theme         string        `toml:"theme"` // "dark" or "light"
	Zoom          ZoomConfig    `toml:"zoom"`
	History       HistoryConfig `toml:"history"`
	Log           LogConfig     `toml:"log"`
	Export        ExportConfig  `toml:"export"`
}

// ZoomConfig controls the zoom buttons and the mouse wheel.
type ZoomConfig struct {
	Step      float64 `toml:"step"`
	WheelStep float64 `toml:"wheel_step"`
}

// HistoryConfig bounds the undo history. Zero means unbounded.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// ExportConfig sets the pixel size of one canvas cell in PNG exports.
type ExportConfig struct {
	CharWidth  int `toml:"char_width"`
	CharHeight int `toml:"char_height"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Confirmations: true,
		Theme:         "dark",
		Zoom:          ZoomConfig{Step: 1.2, WheelStep: 0.1},
		History:       HistoryConfig{Limit: 0},
		Log:           LogConfig{Level: "info"},
		Export:        ExportConfig{CharWidth: 10, CharHeight: 20},
	}
}

// ConfigDir returns the flowcanvas config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowcanvas")
}

// Path is the default config file location.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file. A missing file yields defaults.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path over the defaults. A missing file is
// not an error; a malformed one is.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	if c.Zoom.Step <= 1 {
		c.Zoom.Step = d.Zoom.Step
	}
	if c.Zoom.WheelStep <= 0 || c.Zoom.WheelStep >= 1 {
		c.Zoom.WheelStep = d.Zoom.WheelStep
	}
	if c.History.Limit < 0 {
		c.History.Limit = 0
	}
	if c.Export.CharWidth <= 0 {
		c.Export.CharWidth = d.Export.CharWidth
	}
	if c.Export.CharHeight <= 0 {
		c.Export.CharHeight = d.Export.CharHeight
	}
	if c.Theme != "light" {
		c.Theme = "dark"
	}
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

// Save writes the config to the default location.
func Save(cfg *Config) error {
	return SaveTo(Path(), cfg)
}

func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// GetSavePath resolves a bare filename into the save directory.
// Paths with a directory component are returned unchanged.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) || filepath.Dir(filename) != "." {
		return filename
	}
	_ = os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}
