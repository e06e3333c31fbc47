package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
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

// NewLogger creates a structured logger. Format "text" gives colored
// human-readable output for terminals; anything else is JSON.
func NewLogger(w io.Writer, levelStr, format string) *slog.Logger {
	level := ParseLevel(levelStr)

	if format == "text" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger builds the logger described by the configuration.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(w, c.LogLevel, c.LogFormat)
}
