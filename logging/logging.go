// Package logging builds the leveled slog loggers used by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel is the environment variable holding the default log level.
const EnvLevel = "LOG_LEVEL"

// LevelQuiet is above every level that is ever logged.
const LevelQuiet = slog.LevelError + 4

// ParseLevel maps debug, info, warn(ing), error and quiet to a level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "quiet":
		return LevelQuiet
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// FromEnv returns a logger on stderr at the level in LOG_LEVEL.
func FromEnv() *slog.Logger {
	return New(os.Stderr, os.Getenv(EnvLevel))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, "quiet")
}

// Component tags l with the subsystem name.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With("component", name)
}
