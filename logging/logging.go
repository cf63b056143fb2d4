// Package logging provides structured logging using Go's log/slog.
//
// Configuration is controlled via environment variables:
//   - FLEXLS_LOG_LEVEL: debug, info, warn, error (default: info)
//   - FLEXLS_LOG_FORMAT: text, json (default: text)
//
// All logging goes to stderr to keep stdout clean for the LSP and MCP
// protocols.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
	Source string    // component name for context
}

// DefaultConfig returns defaults for the given source component.
func DefaultConfig(source string) Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
		Source: source,
	}
}

// ParseLevel converts a level name to a slog.Level. Unknown names report false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// LoadConfigFromEnv returns DefaultConfig with any overrides from
// FLEXLS_LOG_LEVEL and FLEXLS_LOG_FORMAT.
func LoadConfigFromEnv(source string) Config {
	cfg := DefaultConfig(source)

	if level, ok := ParseLevel(os.Getenv("FLEXLS_LOG_LEVEL")); ok {
		cfg.Level = level
	}
	if format := os.Getenv("FLEXLS_LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	return cfg
}

// New creates a configured slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("source", cfg.Source)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
