package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// WebDir is the directory holding kunmap.js and kunmap.html.
	// Relative paths are resolved against the working directory. Defaults to "web".
	WebDir string `envconfig:"KUNMAP_WEB_DIR" default:"web"`

	// KanjiDB is the kanji database used to generate kun_map.json.
	// Optional; no data file is written when empty.
	KanjiDB string `envconfig:"KUNMAP_KANJI_DB"`

	// LogDir is where deploy.log is written. Structured logs are discarded when empty.
	LogDir string `envconfig:"KUNMAP_LOG_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads AppConfig from environment variables using envconfig.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolvedWebDir returns WebDir anchored to the current working directory.
// The anchor is only used for logging; copies use WebDir as given.
func (c *AppConfig) ResolvedWebDir() string {
	if filepath.IsAbs(c.WebDir) {
		return c.WebDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return c.WebDir
	}
	return filepath.Join(wd, c.WebDir)
}
