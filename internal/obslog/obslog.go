// Package obslog centralizes structured logging: one package-level
// handle every command and internal package pulls diagnostics through,
// instead of each call site deciding its own format.
package obslog

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	logger  = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// Configure installs a new logger writing to w at the given level. Called
// once from the root command's PersistentPreRunE in
// cmd/compasvalidate/root.go after flags are parsed; internal
// packages never configure logging themselves, only call Logger().
func Configure(w io.Writer, level slog.Level, addSource bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}))
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// ParseLevel maps a CLI --log-level value to a slog.Level, defaulting to
// Info for an empty or unrecognized string.
func ParseLevel(s string) slog.Level {
	switch s {
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
