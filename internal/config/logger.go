package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger for the given environment. Production
// emits JSON at info level for log aggregation; every other environment gets
// human-readable text at debug level with source locations, since attendance
// flows are easiest to trace from the gate decisions logged along the way.
func NewLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
}
