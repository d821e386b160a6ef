package logger

import (
	"log/slog"
	"testing"
)

func TestConfigLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"err", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := (Config{LogLevel: c.in}).Level(); got != c.want {
			t.Errorf("Level(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLoggingBeforeInitDoesNotPanic(t *testing.T) {
	Debugf("discarded %d", 1)
	DebugTagf("history", "discarded too")
	Infof("still discarded")
	Warnf("and this")
	Errorf("and this: %v", nil)
}
