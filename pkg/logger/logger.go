package logger

import (
	"io"
	"log/slog"

	conf "github.com/ERRORIK404/task_calculator/pkg/config"
)

// New builds the process logger. format is "json" or anything else for text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func FromConfig(w io.Writer, cfg *conf.Config) *slog.Logger {
	return New(w, cfg.LogLevel, cfg.LogFormat)
}

// Discard drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
