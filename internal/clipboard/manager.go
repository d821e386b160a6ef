// Package clipboard implements copy/cut/paste over the document's selection.
// Text goes through an internal register by default; the system clipboard is
// used when enabled in configuration.
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/logger"
	"github.com/nibpad/nib/internal/types"
)

// EditorInterface defines what the clipboard needs from the widget.
type EditorInterface interface {
	Document() document.Document
	Selection() (start, end types.Position, ok bool)
	ClearSelection()
}

// Manager holds the internal register and the system-clipboard switch.
type Manager struct {
	editor    EditorInterface
	register  string
	useSystem bool
}

// NewManager creates a clipboard manager.
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	return &Manager{editor: editor, useSystem: useSystem}
}

// Copy stores the selected text. Returns false with no error when nothing
// is selected.
func (m *Manager) Copy() (bool, error) {
	start, end, ok := m.editor.Selection()
	if !ok {
		return false, nil
	}
	text, err := m.editor.Document().TextRange(types.Range{Start: start, End: end})
	if err != nil {
		return false, fmt.Errorf("failed to read selection: %w", err)
	}
	m.store(text)
	m.editor.ClearSelection()
	logger.Debugf("Clipboard: copied %d bytes", len(text))
	return true, nil
}

// Cut stores the selected text and deletes it from the document.
func (m *Manager) Cut() (bool, error) {
	start, end, ok := m.editor.Selection()
	if !ok {
		return false, nil
	}
	doc := m.editor.Document()
	sel := types.Range{Start: start, End: end}
	text, err := doc.TextRange(sel)
	if err != nil {
		return false, fmt.Errorf("failed to read selection: %w", err)
	}
	if err := doc.Replace(sel, ""); err != nil {
		return false, fmt.Errorf("failed to delete selection: %w", err)
	}
	m.store(text)
	m.editor.ClearSelection()
	logger.Debugf("Clipboard: cut %d bytes", len(text))
	return true, nil
}

// Paste inserts the register at the cursor, replacing the selection if one
// is active. Returns false with no error when the register is empty.
func (m *Manager) Paste() (bool, error) {
	text := m.retrieve()
	if text == "" {
		return false, nil
	}
	doc := m.editor.Document()
	target := types.At(doc.Cursor())
	if start, end, ok := m.editor.Selection(); ok {
		target = types.Range{Start: start, End: end}
	}
	if err := doc.Replace(target, text); err != nil {
		return false, fmt.Errorf("failed to paste: %w", err)
	}
	m.editor.ClearSelection()
	return true, nil
}

// store writes text to the register, mirroring it to the system clipboard
// when enabled. A system clipboard failure falls back to the register.
func (m *Manager) store(text string) {
	m.register = text
	if m.useSystem {
		if err := sysclip.WriteAll(text); err != nil {
			logger.Warnf("Clipboard: system clipboard write failed, using internal register: %v", err)
		}
	}
}

// retrieve reads the system clipboard when enabled, falling back to the
// internal register.
func (m *Manager) retrieve() string {
	if m.useSystem {
		if text, err := sysclip.ReadAll(); err == nil {
			return text
		} else {
			logger.Warnf("Clipboard: system clipboard read failed, using internal register: %v", err)
		}
	}
	return m.register
}
