package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"quiet":   LevelQuiet,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, "warn"), "pool")

	l.Info("hidden")
	l.Warn("shown", "worker", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=pool")
	assert.Contains(t, out, "worker=3")
}

func TestQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "quiet")
	l.Error("nope")
	assert.Empty(t, buf.String())

	Component(nil, "x").Error("dropped")
}
