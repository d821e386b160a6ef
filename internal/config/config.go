// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nibpad/nib/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor"` // [editor] table
}

// EditorConfig holds widget-core settings.
type EditorConfig struct {
	// MaxUndo bounds the snapshot ring; the oldest snapshot is evicted
	// once the ring is full.
	MaxUndo int `toml:"max_undo"`
	// DirtyIndicator is appended to the tab title on the first unsaved edit.
	DirtyIndicator string `toml:"dirty_indicator"`
	// NewFileName is the title used before a buffer has a file name.
	NewFileName string `toml:"new_file_name"`
	// SyntaxHighlighting enables the full-document rescan on each change.
	SyntaxHighlighting bool `toml:"syntax_highlighting"`
	// StrictMutations makes a failed document mutation fatal instead of
	// logged-and-ignored.
	StrictMutations bool `toml:"strict_mutations"`
	// SystemClipboard routes copy/cut/paste through the OS clipboard.
	SystemClipboard bool `toml:"system_clipboard"`
	// GutterWidth is the fixed character width of the line-number gutter.
	GutterWidth int `toml:"gutter_width"`
	// PositionRefreshDelayMS is the single-shot timer delay (milliseconds)
	// before the position indicator refreshes after a keystroke.
	PositionRefreshDelayMS int `toml:"position_refresh_delay_ms"`
}

// PositionRefreshDelay returns the configured delay as a duration.
func (ec EditorConfig) PositionRefreshDelay() time.Duration {
	if ec.PositionRefreshDelayMS <= 0 {
		return DefaultPositionRefreshDelay
	}
	return time.Duration(ec.PositionRefreshDelayMS) * time.Millisecond
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			MaxUndo:                DefaultMaxUndo,
			DirtyIndicator:         DefaultDirtyIndicator,
			NewFileName:            DefaultNewFileName,
			SyntaxHighlighting:     false,
			StrictMutations:        false,
			SystemClipboard:        SystemClipboard,
			GutterWidth:            DefaultGutterWidth,
			PositionRefreshDelayMS: int(DefaultPositionRefreshDelay / time.Millisecond),
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// A missing file is not an error.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.MaxUndo <= 0 {
		c.Editor.MaxUndo = defaults.Editor.MaxUndo
	}
	if c.Editor.DirtyIndicator == "" {
		c.Editor.DirtyIndicator = defaults.Editor.DirtyIndicator
	}
	if c.Editor.NewFileName == "" {
		c.Editor.NewFileName = defaults.Editor.NewFileName
	}
	if c.Editor.GutterWidth <= 0 {
		c.Editor.GutterWidth = defaults.Editor.GutterWidth
	}
	if c.Editor.PositionRefreshDelayMS <= 0 {
		c.Editor.PositionRefreshDelayMS = defaults.Editor.PositionRefreshDelayMS
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from the host's main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, false)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				mergeFileConfig(cfg, fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// mergeFileConfig copies set values from a file-loaded config over defaults.
func mergeFileConfig(cfg, fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		cfg.Logger = fileCfg.Logger
	}
	if fileCfg.Editor.MaxUndo > 0 {
		cfg.Editor.MaxUndo = fileCfg.Editor.MaxUndo
	}
	if fileCfg.Editor.DirtyIndicator != "" {
		cfg.Editor.DirtyIndicator = fileCfg.Editor.DirtyIndicator
	}
	if fileCfg.Editor.NewFileName != "" {
		cfg.Editor.NewFileName = fileCfg.Editor.NewFileName
	}
	if fileCfg.Editor.GutterWidth > 0 {
		cfg.Editor.GutterWidth = fileCfg.Editor.GutterWidth
	}
	if fileCfg.Editor.PositionRefreshDelayMS > 0 {
		cfg.Editor.PositionRefreshDelayMS = fileCfg.Editor.PositionRefreshDelayMS
	}
	cfg.Editor.SyntaxHighlighting = fileCfg.Editor.SyntaxHighlighting
	cfg.Editor.StrictMutations = fileCfg.Editor.StrictMutations
	cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
