// Package widget wires the editing core together: a Document, the snapshot
// history, the change notifier, and the dependent views (gutter, status
// bar, highlight trigger, clipboard). The host UI framework owns the event
// loop and rendering; it feeds key events in through HandleKey and renders
// whatever the models say.
package widget

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/nibpad/nib/internal/clipboard"
	"github.com/nibpad/nib/internal/config"
	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/event"
	"github.com/nibpad/nib/internal/gutter"
	"github.com/nibpad/nib/internal/highlight"
	"github.com/nibpad/nib/internal/history"
	"github.com/nibpad/nib/internal/logger"
	"github.com/nibpad/nib/internal/statusbar"
	"github.com/nibpad/nib/internal/types"
)

// Textbox is one editing surface: a document plus the per-tab state that
// hangs off it.
type Textbox struct {
	doc      document.Document
	tracker  *history.Tracker
	notifier *event.Notifier
	gut      *gutter.Gutter
	status   *statusbar.StatusBar
	clip     *clipboard.Manager
	cfg      config.EditorConfig

	filePath string
	fullPath string

	selStart  types.Position
	selEnd    types.Position
	selActive bool

	firstVisible int
	visibleLines int
}

// New creates a textbox over doc and subscribes the dependent views to the
// change notifier.
func New(doc document.Document, cfg config.EditorConfig) *Textbox {
	t := &Textbox{
		doc:          doc,
		tracker:      history.NewTracker(doc, cfg.MaxUndo),
		notifier:     event.NewNotifier(),
		gut:          gutter.New(cfg.GutterWidth),
		status:       statusbar.New(),
		cfg:          cfg,
		visibleLines: -1, // unbounded until the host reports a viewport
	}
	t.tracker.SetStrict(cfg.StrictMutations)
	t.tracker.SetDirtyIndicator(cfg.DirtyIndicator)
	t.tracker.SetFileName(cfg.NewFileName)
	t.clip = clipboard.NewManager(t, cfg.SystemClipboard)

	t.notifier.Subscribe(t.refreshGutter)
	t.notifier.Subscribe(t.refreshStatus)
	return t
}

// AttachHighlightManager subscribes a highlight trigger to the notifier.
func (t *Textbox) AttachHighlightManager(m *highlight.Manager) {
	t.notifier.Subscribe(m.HandleChange)
}

// refreshGutter is the line-number refresh subscriber.
func (t *Textbox) refreshGutter(event.ChangeEvent) {
	t.gut.Refresh(t.doc, t.firstVisible, t.visibleLines)
}

// refreshStatus keeps the status bar in step with the document. The
// position indicator itself refreshes on a short delay so the cursor has
// visibly moved first.
func (t *Textbox) refreshStatus(event.ChangeEvent) {
	t.status.SetFileInfo(t.tracker.FileName(), t.tracker.IsDirty())
	t.status.ScheduleRefresh(t.doc, t.cfg.PositionRefreshDelay())
}

// Accessors for the host and the dependent managers.

func (t *Textbox) Document() document.Document { return t.doc }
func (t *Textbox) Tracker() *history.Tracker   { return t.tracker }
func (t *Textbox) Notifier() *event.Notifier   { return t.notifier }
func (t *Textbox) Gutter() *gutter.Gutter      { return t.gut }
func (t *Textbox) StatusBar() *statusbar.StatusBar {
	return t.status
}
func (t *Textbox) Clipboard() *clipboard.Manager { return t.clip }

// SetTitleUpdater registers the host callback that repaints the tab title.
func (t *Textbox) SetTitleUpdater(fn history.TitleUpdater) {
	t.tracker.SetTitleUpdater(fn)
}

// SetMeta sets file metadata. Empty arguments keep their current value.
// Updating the file name also updates the tab title.
func (t *Textbox) SetMeta(filePath, fileName, fullPath string) {
	if filePath != "" {
		t.filePath = filePath
	}
	if fullPath != "" {
		t.fullPath = fullPath
	}
	if fileName != "" {
		t.tracker.SetFileName(fileName)
		t.status.SetFileInfo(fileName, t.tracker.IsDirty())
	}
}

// FileName returns the display name of the buffer.
func (t *Textbox) FileName() string { return t.tracker.FileName() }

// FilePath returns the file path set via SetMeta.
func (t *Textbox) FilePath() string { return t.filePath }

// FullPath returns the absolute path set via SetMeta.
func (t *Textbox) FullPath() string { return t.fullPath }

// AcknowledgeSave clears the dirty flag after the host has written the file.
func (t *Textbox) AcknowledgeSave() {
	t.tracker.AcknowledgeSave()
	t.status.SetFileInfo(t.tracker.FileName(), false)
}

// Close tears down timers owned by the view.
func (t *Textbox) Close() {
	t.status.Stop()
}

// --- Key handling ---

// HandleKey runs the per-keystroke pipeline: dirty-mark classification,
// delayed position refresh, the edit itself, and one history snapshot per
// qualifying edit. In lenient mode a failed mutation is logged and nil is
// returned; in strict mode the error propagates.
func (t *Textbox) HandleKey(ev *tcell.EventKey) error {
	plain := isCharacterProducing(ev)
	t.tracker.MarkDirtyIfClean(plain)
	t.status.ScheduleRefresh(t.doc, t.cfg.PositionRefreshDelay())

	mutated, err := t.applyKey(ev)
	if err != nil {
		if t.cfg.StrictMutations {
			return fmt.Errorf("key %v: %w", ev.Key(), err)
		}
		logger.Errorf("Textbox: edit failed: %v", err)
		return nil
	}
	if mutated {
		t.tracker.RecordSnapshot()
	}
	return nil
}

// applyKey performs the edit or movement and reports whether the document
// content changed.
func (t *Textbox) applyKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyRune:
		return true, t.insertText(string(ev.Rune()))
	case tcell.KeyEnter:
		return true, t.insertText("\n")
	case tcell.KeyTab:
		return true, t.insertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return t.deleteBackward()
	case tcell.KeyDelete:
		return t.deleteForward()
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight,
		tcell.KeyHome, tcell.KeyEnd:
		t.moveCursor(ev.Key())
		return false, nil
	case tcell.KeyCtrlZ:
		return false, t.Undo()
	case tcell.KeyCtrlY:
		return false, t.Redo()
	case tcell.KeyCtrlA:
		t.SelectAll()
		return false, nil
	case tcell.KeyCtrlC:
		_, err := t.clip.Copy()
		return false, err
	case tcell.KeyCtrlX:
		ok, err := t.clip.Cut()
		if ok {
			t.notifier.Notify("delete")
		}
		return ok, err
	case tcell.KeyCtrlV:
		ok, err := t.clip.Paste()
		if ok {
			t.notifier.Notify("insert")
		}
		return ok, err
	}
	return false, nil
}

// isCharacterProducing reports whether the key press puts a character into
// the document, as opposed to navigation or a shortcut chord. Only these
// edits mark the buffer dirty.
func isCharacterProducing(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		// Shift is part of typing; any other modifier makes it a chord.
		return ev.Modifiers()&^tcell.ModShift == 0
	case tcell.KeyEnter, tcell.KeyTab,
		tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return true
	default:
		return false
	}
}

// insertText inserts at the cursor, replacing any active selection.
func (t *Textbox) insertText(text string) error {
	target := types.At(t.doc.Cursor())
	if t.selActive {
		target = types.Range{Start: t.selStart, End: t.selEnd}
		t.selActive = false
	}
	if err := t.doc.Replace(target, text); err != nil {
		return err
	}
	t.notifier.Notify("insert")
	return nil
}

// deleteBackward removes the selection, or the character before the cursor.
func (t *Textbox) deleteBackward() (bool, error) {
	if t.selActive {
		return t.DeleteSelection()
	}
	pos := t.doc.Cursor()
	prev := t.prevPosition(pos)
	if prev == pos {
		return false, nil // start of document
	}
	if err := t.doc.Replace(types.Range{Start: prev, End: pos}, ""); err != nil {
		return false, err
	}
	t.notifier.Notify("delete")
	return true, nil
}

// deleteForward removes the selection, or the character after the cursor.
func (t *Textbox) deleteForward() (bool, error) {
	if t.selActive {
		return t.DeleteSelection()
	}
	pos := t.doc.Cursor()
	next := t.nextPosition(pos)
	if next == pos {
		return false, nil // end of document
	}
	if err := t.doc.Replace(types.Range{Start: pos, End: next}, ""); err != nil {
		return false, err
	}
	t.doc.SetCursor(pos)
	t.notifier.Notify("delete")
	return true, nil
}

// moveCursor handles navigation keys and announces the cursor move.
func (t *Textbox) moveCursor(key tcell.Key) {
	pos := t.doc.Cursor()
	switch key {
	case tcell.KeyUp:
		pos.Line--
	case tcell.KeyDown:
		pos.Line++
	case tcell.KeyLeft:
		pos = t.prevPosition(pos)
	case tcell.KeyRight:
		pos = t.nextPosition(pos)
	case tcell.KeyHome:
		pos.Col = 0
	case tcell.KeyEnd:
		if line, err := t.doc.Line(pos.Line); err == nil {
			pos.Col = len([]rune(line))
		}
	}
	t.doc.SetCursor(pos)
	t.notifier.Notify("mark", "set", "insert")
}

// prevPosition steps one character left, wrapping to the previous line.
func (t *Textbox) prevPosition(pos types.Position) types.Position {
	if pos.Col > 0 {
		return types.Position{Line: pos.Line, Col: pos.Col - 1}
	}
	if pos.Line > 0 {
		line, err := t.doc.Line(pos.Line - 1)
		if err != nil {
			return pos
		}
		return types.Position{Line: pos.Line - 1, Col: len([]rune(line))}
	}
	return pos
}

// nextPosition steps one character right, wrapping to the next line.
func (t *Textbox) nextPosition(pos types.Position) types.Position {
	line, err := t.doc.Line(pos.Line)
	if err != nil {
		return pos
	}
	if pos.Col < len([]rune(line)) {
		return types.Position{Line: pos.Line, Col: pos.Col + 1}
	}
	if pos.Line < t.doc.LineCount()-1 {
		return types.Position{Line: pos.Line + 1, Col: 0}
	}
	return pos
}

// --- Undo / redo ---

// Undo restores the previous snapshot and announces the content change.
func (t *Textbox) Undo() error {
	acted := t.tracker.CanUndo()
	if err := t.tracker.Undo(); err != nil {
		return err
	}
	if acted {
		t.notifier.Notify("replace")
	}
	return nil
}

// Redo restores the next snapshot and announces the content change.
func (t *Textbox) Redo() error {
	acted := t.tracker.CanRedo()
	if err := t.tracker.Redo(); err != nil {
		return err
	}
	if acted {
		t.notifier.Notify("replace")
	}
	return nil
}

// --- Selection ---

// SelectAll selects the whole document.
func (t *Textbox) SelectAll() {
	t.selStart = types.Position{}
	t.selEnd = document.End(t.doc)
	t.selActive = !document.IsBlank(t.doc)
}

// Selection returns the active selection, if any.
func (t *Textbox) Selection() (start, end types.Position, ok bool) {
	if !t.selActive {
		return types.Position{}, types.Position{}, false
	}
	return t.selStart, t.selEnd, true
}

// SetSelection activates a selection over the given range.
func (t *Textbox) SetSelection(r types.Range) {
	r = r.Normalize()
	t.selStart, t.selEnd = r.Start, r.End
	t.selActive = true
}

// ClearSelection deactivates the selection.
func (t *Textbox) ClearSelection() {
	t.selActive = false
}

// SelectionText returns the selected text, or "" without a selection.
func (t *Textbox) SelectionText() string {
	if !t.selActive {
		return ""
	}
	text, err := t.doc.TextRange(types.Range{Start: t.selStart, End: t.selEnd})
	if err != nil {
		logger.Warnf("Textbox: cannot read selection: %v", err)
		return ""
	}
	return text
}

// DeleteSelection removes the selected text.
func (t *Textbox) DeleteSelection() (bool, error) {
	if !t.selActive {
		return false, nil
	}
	sel := types.Range{Start: t.selStart, End: t.selEnd}
	t.selActive = false
	if err := t.doc.Replace(sel, ""); err != nil {
		return false, err
	}
	t.notifier.Notify("delete")
	return true, nil
}

// CurrentLineText returns the text of the cursor's line.
func (t *Textbox) CurrentLineText() string {
	line, err := t.doc.Line(t.doc.Cursor().Line)
	if err != nil {
		return ""
	}
	return line
}

// --- Scrolling ---

// SetViewport tells the widget what the host is showing. The gutter walks
// exactly this window on refresh.
func (t *Textbox) SetViewport(firstVisible, visibleLines int) {
	t.firstVisible = t.clampLine(firstVisible)
	t.visibleLines = visibleLines
	t.notifier.Notify("yview", "moveto")
}

// ScrollLines moves the viewport by delta lines.
func (t *Textbox) ScrollLines(delta int) {
	t.firstVisible = t.clampLine(t.firstVisible + delta)
	t.notifier.Notify("yview", "scroll")
}

// ScrollToFraction moves the viewport to a fraction of the document, the
// shape a scrollbar drag reports.
func (t *Textbox) ScrollToFraction(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	t.firstVisible = t.clampLine(int(fraction * float64(t.doc.LineCount()-1)))
	t.notifier.Notify("yview", "moveto")
}

// FirstVisible returns the top line of the viewport.
func (t *Textbox) FirstVisible() int { return t.firstVisible }

func (t *Textbox) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if max := t.doc.LineCount() - 1; line > max {
		return max
	}
	return line
}
