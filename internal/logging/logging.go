// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init sets the default slog logger to write to stderr.
// machineReadable selects JSON records (for runs whose report is JSON);
// otherwise records use the text handler.
func Init(machineReadable bool, level slog.Level) {
	slog.SetDefault(New(os.Stderr, machineReadable, level))
}

// New creates a logger writing to w.
func New(w io.Writer, machineReadable bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if machineReadable {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
