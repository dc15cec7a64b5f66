package cliutil

import (
	"log/slog"
	"os"

	"github.com/dantte-lp/farout/internal/config"
)

// NewLogger creates a structured logger from a LogConfig, selecting a
// JSON or text handler per cfg.Format.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
