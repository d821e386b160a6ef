package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Editor.MaxUndo != DefaultMaxUndo {
		t.Errorf("MaxUndo = %d, want %d", cfg.Editor.MaxUndo, DefaultMaxUndo)
	}
	if cfg.Editor.DirtyIndicator != " *" {
		t.Errorf("DirtyIndicator = %q, want %q", cfg.Editor.DirtyIndicator, " *")
	}
	if cfg.Editor.NewFileName != "untitled" {
		t.Errorf("NewFileName = %q, want %q", cfg.Editor.NewFileName, "untitled")
	}
	if cfg.Editor.StrictMutations {
		t.Error("StrictMutations should default to false")
	}
	if cfg.Logger.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.Logger.LogLevel, "info")
	}
}

func TestValidateResetsInvalidValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Editor.MaxUndo = -3
	cfg.Editor.GutterWidth = 0
	cfg.Editor.NewFileName = ""
	cfg.Logger.LogLevel = ""
	cfg.validate()

	if cfg.Editor.MaxUndo != DefaultMaxUndo {
		t.Errorf("MaxUndo after validate = %d, want default", cfg.Editor.MaxUndo)
	}
	if cfg.Editor.GutterWidth != DefaultGutterWidth {
		t.Errorf("GutterWidth after validate = %d, want default", cfg.Editor.GutterWidth)
	}
	if cfg.Editor.NewFileName != DefaultNewFileName {
		t.Errorf("NewFileName after validate = %q, want default", cfg.Editor.NewFileName)
	}
	if cfg.Logger.LogLevel != "info" {
		t.Errorf("LogLevel after validate = %q, want %q", cfg.Logger.LogLevel, "info")
	}
}

func TestPositionRefreshDelay(t *testing.T) {
	ec := EditorConfig{PositionRefreshDelayMS: 25}
	if got := ec.PositionRefreshDelay(); got != 25*time.Millisecond {
		t.Errorf("delay = %v, want 25ms", got)
	}
	ec.PositionRefreshDelayMS = 0
	if got := ec.PositionRefreshDelay(); got != DefaultPositionRefreshDelay {
		t.Errorf("delay = %v, want default %v", got, DefaultPositionRefreshDelay)
	}
}
