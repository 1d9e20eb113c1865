package app

import (
	"io"
	"log/slog"
)

// newLogger creates the logger for one application instance from its config.
// It does not set the global logger. Every record carries the data directory
// the instance loads from, so output from several instances can be told apart.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler).With("data_path", cfg.DataPath)
}
