// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/logger"
	"github.com/nibpad/nib/internal/types"
	"github.com/rivo/uniseg"
)

// DefaultMessageTimeout is how long a temporary message stays visible.
const DefaultMessageTimeout = 4 * time.Second

// StatusBar is the model behind the status line: file info, dirty marker,
// and the cursor position indicator. The host renders DisplayText; this
// package only maintains what it says.
type StatusBar struct {
	mu sync.RWMutex

	fileName  string
	dirty     bool
	cursorPos types.Position
	visualCol int

	tempMessage     string
	tempMessageTime time.Time
	messageTimeout  time.Duration

	refreshTimer *time.Timer
}

// New creates an empty status bar.
func New() *StatusBar {
	return &StatusBar{messageTimeout: DefaultMessageTimeout}
}

// SetFileInfo updates the file name and dirty marker.
func (sb *StatusBar) SetFileInfo(name string, dirty bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.fileName = name
	sb.dirty = dirty
}

// SetCursorInfo updates the position indicator. line is the text of the
// cursor's line, used to compute the visual column from the rune index.
func (sb *StatusBar) SetCursorInfo(pos types.Position, line string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.visualCol = visualColumn(line, pos.Col)
}

// SetTemporaryMessage displays a message until the timeout elapses.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// DisplayText builds the current status line text.
func (sb *StatusBar) DisplayText() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if sb.tempMessage != "" && time.Since(sb.tempMessageTime) < sb.messageTimeout {
		return sb.tempMessage
	}

	name := sb.fileName
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if sb.dirty {
		modified = " [Modified]"
	}
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d",
		name, modified, sb.cursorPos.Line+1, sb.visualCol+1)
}

// ScheduleRefresh arms a single-shot timer that re-reads the cursor from
// doc after the delay. Keystroke handlers use this so the indicator updates
// after the cursor has visibly moved with the typed character. A pending
// timer is re-armed, so a burst of keystrokes yields one refresh.
func (sb *StatusBar) ScheduleRefresh(doc document.Document, delay time.Duration) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.refreshTimer != nil {
		sb.refreshTimer.Reset(delay)
		return
	}
	sb.refreshTimer = time.AfterFunc(delay, func() {
		sb.mu.Lock()
		sb.refreshTimer = nil
		sb.mu.Unlock()
		sb.refreshFrom(doc)
	})
}

// Stop cancels any pending refresh. Called on view teardown.
func (sb *StatusBar) Stop() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.refreshTimer != nil {
		sb.refreshTimer.Stop()
		sb.refreshTimer = nil
	}
}

// refreshFrom reads the cursor position out of the document.
func (sb *StatusBar) refreshFrom(doc document.Document) {
	pos := doc.Cursor()
	line, err := doc.Line(pos.Line)
	if err != nil {
		logger.Warnf("StatusBar: cannot read cursor line %d: %v", pos.Line, err)
		line = ""
	}
	sb.SetCursorInfo(pos, line)
}

// visualColumn converts a rune index into a visual column, walking grapheme
// clusters so wide characters count for their rendered width.
func visualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRune := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentRune >= runeIndex {
			break
		}
		visualWidth += gr.Width()
		currentRune += len(gr.Runes())
	}
	return visualWidth
}
