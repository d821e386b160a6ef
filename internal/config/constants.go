package config

import "time"

// Base application details
const AppName = "nib"
const ConfigDirName = "nib"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "nib.log"

// Undo history
const DefaultMaxUndo = 10

// Tab title and file naming
const DefaultDirtyIndicator = " *"
const DefaultNewFileName = "untitled"

// Gutter layout. Labels drop to the small font once the line number
// grows past GutterDigitThreshold digits, so wide numbers keep fitting
// the fixed-width gutter.
const DefaultGutterWidth = 4
const GutterDigitThreshold = 4
const GutterFontSize = 10
const GutterSmallFontSize = 7

// Delay before the position indicator refreshes after a keystroke,
// giving the cursor a chance to move first.
const DefaultPositionRefreshDelay = 10 * time.Millisecond

// Status bar
const MessageTimeout = 4 * time.Second

const SystemClipboard = false
