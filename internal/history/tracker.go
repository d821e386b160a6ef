// Package history provides undo/redo via a bounded ring of full-document
// snapshots, plus the dirty-since-last-save flag for the owning session.
//
// This is deliberately a snapshot model, not an operation log: each recorded
// state is a full text copy, the ring drops the oldest state past capacity,
// and undo past the oldest retained snapshot is simply not possible.
package history

import (
	"fmt"
	"sync"

	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/logger"
	"github.com/nibpad/nib/internal/types"
)

const DefaultCapacity = 10

// TitleUpdater receives the tab/title text whenever it should change:
// the file name alone, or file name plus dirty indicator.
type TitleUpdater func(title string)

// Tracker owns the snapshot ring and the dirty flag.
type Tracker struct {
	mutex sync.Mutex
	doc   document.Document

	snapshots []string
	cursor    int // index of the currently-restored snapshot
	capacity  int

	strict bool // failed restores propagate instead of being logged

	dirty          bool
	fileName       string
	dirtyIndicator string
	titleUpdater   TitleUpdater
}

// NewTracker creates a tracker over doc with the given ring capacity.
func NewTracker(doc document.Document, capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{
		doc:            doc,
		snapshots:      make([]string, 0, capacity),
		capacity:       capacity,
		dirtyIndicator: " *",
	}
}

// SetStrict switches failed document mutations from logged-and-ignored to
// propagated errors.
func (t *Tracker) SetStrict(strict bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.strict = strict
}

// SetDirtyIndicator overrides the suffix appended to the title on the first
// unsaved edit.
func (t *Tracker) SetDirtyIndicator(indicator string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.dirtyIndicator = indicator
}

// SetTitleUpdater registers the callback that repaints the tab title.
func (t *Tracker) SetTitleUpdater(fn TitleUpdater) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.titleUpdater = fn
}

// SetFileName updates the file name and repaints the title. The dirty
// indicator is re-applied if there are unsaved changes.
func (t *Tracker) SetFileName(name string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.fileName = name
	if t.titleUpdater != nil {
		title := name
		if t.dirty {
			title += t.dirtyIndicator
		}
		t.titleUpdater(title)
	}
}

// FileName returns the current file name.
func (t *Tracker) FileName() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.fileName
}

// RecordSnapshot captures the current document text and appends it to the
// ring, evicting the oldest snapshot when the ring is full. The cursor
// advances by one, capped at capacity-1.
//
// Called once per qualifying edit. Every call produces exactly one
// retrievable prior state.
func (t *Tracker) RecordSnapshot() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.snapshots = append(t.snapshots, t.doc.Text())
	if len(t.snapshots) > t.capacity {
		t.snapshots = t.snapshots[len(t.snapshots)-t.capacity:]
	}
	if t.cursor < t.capacity-1 {
		t.cursor++
	}
	logger.DebugTagf("history", "Recorded snapshot. Cursor: %d, Count: %d", t.cursor, len(t.snapshots))
}

// Undo steps the cursor left and restores that snapshot. At cursor 0 it is
// a silent no-op: history older than the ring capacity is gone by design.
func (t *Tracker) Undo() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.cursor == 0 {
		logger.DebugTagf("history", "Nothing to undo.")
		return nil
	}
	t.cursor--
	logger.DebugTagf("history", "Undo to snapshot %d", t.cursor)
	return t.restore(t.snapshots[t.cursor])
}

// Redo steps the cursor right and restores that snapshot, or does nothing
// when no later snapshot exists.
func (t *Tracker) Redo() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if len(t.snapshots) <= t.cursor+1 {
		logger.DebugTagf("history", "Nothing to redo. cursor=%d, count=%d", t.cursor, len(t.snapshots))
		return nil
	}
	t.cursor++
	logger.DebugTagf("history", "Redo to snapshot %d", t.cursor)
	return t.restore(t.snapshots[t.cursor])
}

// restore clears the document and re-inserts the snapshot text.
// Caller holds the mutex.
func (t *Tracker) restore(text string) error {
	t.doc.Clear()
	if text == "" {
		return nil
	}
	if err := t.doc.Replace(types.At(types.Position{}), text); err != nil {
		if t.strict {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		logger.Errorf("History: snapshot restore failed: %v", err)
	}
	return nil
}

// MarkDirtyIfClean sets the dirty flag on the first character-producing
// edit of a save cycle and repaints the title with the dirty indicator.
// Navigation and shortcut events (plainEdit false) never mark dirty.
func (t *Tracker) MarkDirtyIfClean(plainEdit bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.dirty || !plainEdit {
		return
	}
	t.dirty = true
	if t.titleUpdater != nil {
		t.titleUpdater(t.fileName + t.dirtyIndicator)
	}
}

// AcknowledgeSave clears the dirty flag and repaints the title without the
// indicator. The host calls this after a successful save.
func (t *Tracker) AcknowledgeSave() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.dirty {
		return
	}
	t.dirty = false
	if t.titleUpdater != nil {
		t.titleUpdater(t.fileName)
	}
}

// IsDirty reports whether there are unsaved changes.
func (t *Tracker) IsDirty() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.dirty
}

// CanUndo reports whether an earlier snapshot is available.
func (t *Tracker) CanUndo() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.cursor > 0
}

// CanRedo reports whether a later snapshot is available.
func (t *Tracker) CanRedo() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.snapshots) > t.cursor+1
}

// Len returns the number of retained snapshots.
func (t *Tracker) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.snapshots)
}

// Cursor returns the current snapshot index.
func (t *Tracker) Cursor() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.cursor
}

// Clear resets the ring. History does not persist across sessions, so the
// host calls this when a new document is loaded into the widget.
func (t *Tracker) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.snapshots = t.snapshots[:0]
	t.cursor = 0
	logger.DebugTagf("history", "Cleared.")
}
