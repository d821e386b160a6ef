package widget

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/nibpad/nib/internal/config"
	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/types"
)

func newTestTextbox(text string) *Textbox {
	cfg := config.NewDefaultConfig().Editor
	return New(document.NewLineDocumentFromText(text), cfg)
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestTypingInsertsAndRecords(t *testing.T) {
	tb := newTestTextbox("")
	for _, r := range "hi" {
		if err := tb.HandleKey(keyRune(r)); err != nil {
			t.Fatalf("HandleKey(%c) failed: %v", r, err)
		}
	}
	if got := tb.Document().Text(); got != "hi" {
		t.Errorf("text = %q, want %q", got, "hi")
	}
	if tb.Tracker().Len() != 2 {
		t.Errorf("snapshot count = %d, want one per keystroke", tb.Tracker().Len())
	}
	if !tb.Tracker().IsDirty() {
		t.Error("typing did not mark the buffer dirty")
	}
}

func TestEnterSplitsLine(t *testing.T) {
	tb := newTestTextbox("ab")
	tb.Document().SetCursor(types.Position{Line: 0, Col: 1})
	if err := tb.HandleKey(key(tcell.KeyEnter)); err != nil {
		t.Fatalf("HandleKey(Enter) failed: %v", err)
	}
	if got := tb.Document().Text(); got != "a\nb" {
		t.Errorf("text = %q, want %q", got, "a\nb")
	}
}

func TestNavigationDoesNotDirtyOrRecord(t *testing.T) {
	tb := newTestTextbox("hello\nworld")
	for _, k := range []tcell.Key{tcell.KeyRight, tcell.KeyDown, tcell.KeyEnd, tcell.KeyHome, tcell.KeyUp, tcell.KeyLeft} {
		if err := tb.HandleKey(key(k)); err != nil {
			t.Fatalf("HandleKey(%v) failed: %v", k, err)
		}
	}
	if tb.Tracker().IsDirty() {
		t.Error("navigation marked the buffer dirty")
	}
	if tb.Tracker().Len() != 0 {
		t.Errorf("navigation recorded %d snapshots", tb.Tracker().Len())
	}
}

func TestChordDoesNotDirty(t *testing.T) {
	tb := newTestTextbox("x")
	tb.SelectAll()
	if err := tb.HandleKey(key(tcell.KeyCtrlC)); err != nil {
		t.Fatalf("HandleKey(Ctrl+C) failed: %v", err)
	}
	if tb.Tracker().IsDirty() {
		t.Error("copy chord marked the buffer dirty")
	}
}

func TestBackspace(t *testing.T) {
	tb := newTestTextbox("abc")
	tb.Document().SetCursor(types.Position{Line: 0, Col: 3})
	if err := tb.HandleKey(key(tcell.KeyBackspace2)); err != nil {
		t.Fatalf("HandleKey(Backspace) failed: %v", err)
	}
	if got := tb.Document().Text(); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}

	// At the document origin backspace deletes nothing and records nothing.
	before := tb.Tracker().Len()
	tb.Document().SetCursor(types.Position{})
	if err := tb.HandleKey(key(tcell.KeyBackspace2)); err != nil {
		t.Fatalf("HandleKey(Backspace) failed: %v", err)
	}
	if got := tb.Document().Text(); got != "ab" {
		t.Errorf("text = %q, want unchanged %q", got, "ab")
	}
	if tb.Tracker().Len() != before {
		t.Error("no-op backspace recorded a snapshot")
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	tb := newTestTextbox("a\nb")
	tb.Document().SetCursor(types.Position{Line: 1, Col: 0})
	if err := tb.HandleKey(key(tcell.KeyBackspace2)); err != nil {
		t.Fatalf("HandleKey(Backspace) failed: %v", err)
	}
	if got := tb.Document().Text(); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	tb := newTestTextbox("")
	for _, r := range "abc" {
		if err := tb.HandleKey(keyRune(r)); err != nil {
			t.Fatalf("typing failed: %v", err)
		}
	}

	// The cursor leads the ring by one, so the first undo lands on the
	// snapshot matching the current text.
	for i := 0; i < 2; i++ {
		if err := tb.HandleKey(key(tcell.KeyCtrlZ)); err != nil {
			t.Fatalf("undo failed: %v", err)
		}
	}
	if got := tb.Document().Text(); got != "ab" {
		t.Errorf("after undos text = %q, want %q", got, "ab")
	}

	if err := tb.HandleKey(key(tcell.KeyCtrlY)); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if got := tb.Document().Text(); got != "abc" {
		t.Errorf("after redo text = %q, want %q", got, "abc")
	}
}

func TestSelectAllAndDelete(t *testing.T) {
	tb := newTestTextbox("one\ntwo")
	tb.SelectAll()
	if got := tb.SelectionText(); got != "one\ntwo" {
		t.Errorf("selection text = %q, want full document", got)
	}
	ok, err := tb.DeleteSelection()
	if err != nil || !ok {
		t.Fatalf("DeleteSelection = (%v, %v), want success", ok, err)
	}
	if !document.IsBlank(tb.Document()) {
		t.Errorf("document not blank after delete, text = %q", tb.Document().Text())
	}
}

func TestSelectAllOnBlankDocument(t *testing.T) {
	tb := newTestTextbox("")
	tb.SelectAll()
	if _, _, ok := tb.Selection(); ok {
		t.Error("blank document produced an active selection")
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	tb := newTestTextbox("hello")
	tb.SetSelection(types.Range{Start: types.Position{}, End: types.Position{Line: 0, Col: 5}})
	if err := tb.HandleKey(keyRune('x')); err != nil {
		t.Fatalf("HandleKey failed: %v", err)
	}
	if got := tb.Document().Text(); got != "x" {
		t.Errorf("text = %q, want %q", got, "x")
	}
}

func TestTitleUpdaterOnDirtyTransition(t *testing.T) {
	tb := newTestTextbox("")
	var last string
	tb.SetTitleUpdater(func(title string) { last = title })
	tb.SetMeta("", "draft.txt", "")
	if last != "draft.txt" {
		t.Fatalf("title after SetMeta = %q, want %q", last, "draft.txt")
	}

	if err := tb.HandleKey(keyRune('a')); err != nil {
		t.Fatalf("typing failed: %v", err)
	}
	if last != "draft.txt *" {
		t.Errorf("title after edit = %q, want dirty indicator", last)
	}

	tb.AcknowledgeSave()
	if last != "draft.txt" {
		t.Errorf("title after save = %q, want %q", last, "draft.txt")
	}
}

func TestGutterFollowsViewport(t *testing.T) {
	tb := newTestTextbox("a\nb\nc\nd\ne\nf")
	tb.SetViewport(2, 3)

	labels := tb.Gutter().Labels()
	if len(labels) != 3 {
		t.Fatalf("label count = %d, want 3", len(labels))
	}
	if labels[0].Line != 2 {
		t.Errorf("first visible label line = %d, want 2", labels[0].Line)
	}
}

func TestScrollLinesClamps(t *testing.T) {
	tb := newTestTextbox("a\nb\nc")
	tb.ScrollLines(10)
	if tb.FirstVisible() != 2 {
		t.Errorf("first visible = %d, want clamped to 2", tb.FirstVisible())
	}
	tb.ScrollLines(-10)
	if tb.FirstVisible() != 0 {
		t.Errorf("first visible = %d, want clamped to 0", tb.FirstVisible())
	}
}

func TestCutPasteKeys(t *testing.T) {
	tb := newTestTextbox("cut me")
	tb.SetSelection(types.Range{Start: types.Position{}, End: types.Position{Line: 0, Col: 4}})
	if err := tb.HandleKey(key(tcell.KeyCtrlX)); err != nil {
		t.Fatalf("cut failed: %v", err)
	}
	if got := tb.Document().Text(); got != "me" {
		t.Fatalf("text after cut = %q, want %q", got, "me")
	}

	tb.Document().SetCursor(types.Position{Line: 0, Col: 2})
	if err := tb.HandleKey(key(tcell.KeyCtrlV)); err != nil {
		t.Fatalf("paste failed: %v", err)
	}
	if got := tb.Document().Text(); got != "mecut " {
		t.Errorf("text after paste = %q, want %q", got, "mecut ")
	}
}
