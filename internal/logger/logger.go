// Package logger provides the structured slog logger used by kundeploy.
// Logs are written in JSON format to <logDir>/deploy.log, which is rotated
// by size. Standard output is never used; it belongs to the copy report.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName = "deploy.log"
	maxSizeMB   = 10
	maxBackups  = 5
)

// New creates a JSON slog.Logger that writes to <logDir>/deploy.log.
// The directory is created if it does not exist. An empty logDir returns a
// logger that discards everything.
func New(logDir string, level slog.Level) (*slog.Logger, error) {
	if logDir == "" {
		return slog.New(slog.DiscardHandler), nil
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// WithRunID tags every record of base with a fresh run id, so that lines from
// one invocation can be grouped in a shared log file.
func WithRunID(base *slog.Logger) *slog.Logger {
	return base.With("run_id", uuid.NewString())
}
