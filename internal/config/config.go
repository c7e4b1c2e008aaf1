// Package config loads and saves the flowcanvas CLI configuration.
//
// Configuration lives at $XDG_CONFIG_HOME/flowcanvas/config.toml (or
// ~/.config/flowcanvas/config.toml) and controls CLI presentation defaults.
// Library consumers never touch this package; the graph core is
// configuration-free.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds flowcanvas CLI configuration.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

// UIConfig controls display options.
type UIConfig struct {
	Color bool `toml:"color"`
}

// ExportConfig controls export defaults.
type ExportConfig struct {
	// Format is the default output format: "json" or "dot".
	Format string `toml:"format"`
	// Detailed includes port names and template provenance in DOT output.
	Detailed bool `toml:"detailed"`
}

// LogConfig controls logging behavior.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error".
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI:     UIConfig{Color: true},
		Export: ExportConfig{Format: "json"},
		Log:    LogConfig{Level: "info"},
	}
}

// Dir returns the flowcanvas config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowcanvas")
}

func path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, falling back to defaults when the file is
// missing or unreadable.
func Load() *Config {
	cfg := Default()

	data, err := os.ReadFile(path())
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg *Config) error {
	p := path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
