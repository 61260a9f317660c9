package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production gets JSON at Info level;
// everything else gets a text handler at Debug so local runs stay readable.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}

	if cfg != nil && cfg.IsProduction() {
		opts.Level = slog.LevelInfo
		if cfg.LogFormat != "text" {
			return slog.New(slog.NewJSONHandler(os.Stdout, opts))
		}
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
