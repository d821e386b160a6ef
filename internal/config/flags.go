// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	LogLevel        *string
	LogFilePath     *string
	MaxUndo         *int
	StrictMutations *bool
	SystemClipboard *bool
	SyntaxHighlight *bool
}

// DefineFlags sets up the command-line flags and associates them with the
// Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.MaxUndo = flag.Int("maxundo", 0, "Snapshot history capacity - Overrides config file") // 0 means unset
	f.StrictMutations = flag.Bool("strict", false, "Treat failed document mutations as fatal - Overrides config file")
	f.SystemClipboard = flag.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.SyntaxHighlight = flag.Bool("syntax", false, "Enable syntax highlight rescans - Overrides config file")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments (e.g., a file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil && *f.LogFilePath != "" {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "maxundo":
			if f.MaxUndo != nil && *f.MaxUndo > 0 {
				cfg.Editor.MaxUndo = *f.MaxUndo
			}
		case "strict":
			if f.StrictMutations != nil {
				cfg.Editor.StrictMutations = *f.StrictMutations
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Editor.SystemClipboard = *f.SystemClipboard
			}
		case "syntax":
			if f.SyntaxHighlight != nil {
				cfg.Editor.SyntaxHighlighting = *f.SyntaxHighlight
			}
		}
	})
}
