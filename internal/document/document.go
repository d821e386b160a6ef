// Package document defines the capability surface the widget core uses to
// read and mutate text. The core never owns the text; a host may satisfy
// Document with its own storage, and LineDocument is the reference
// implementation used by the shipped widget.
package document

import "github.com/nibpad/nib/internal/types"

// Document is an externally-owned mutable sequence of characters with a
// cursor position. Text returned never carries an implicit trailing
// terminator; what you get is exactly what the buffer holds.
type Document interface {
	// Text returns the full document text.
	Text() string
	// TextRange returns the text within r.
	TextRange(r types.Range) (string, error)
	// Replace substitutes the text within r. A collapsed range inserts,
	// an empty replacement deletes.
	Replace(r types.Range, text string) error
	// Clear resets the document to a single empty line.
	Clear()
	// Cursor returns the current cursor position.
	Cursor() types.Position
	// SetCursor moves the cursor, clamping to valid bounds.
	SetCursor(pos types.Position)
	// LineCount returns the number of lines, always at least 1.
	LineCount() int
	// Line returns the text of one line without its newline.
	Line(index int) (string, error)
}

// IsBlank reports whether d has never held a character. A fresh document
// holds a single empty line, so length alone is not the right check.
func IsBlank(d Document) bool {
	if d.LineCount() != 1 {
		return false
	}
	line, err := d.Line(0)
	return err == nil && line == ""
}

// End returns the position just past the last character of d.
func End(d Document) types.Position {
	last := d.LineCount() - 1
	line, err := d.Line(last)
	if err != nil {
		return types.Position{}
	}
	return types.Position{Line: last, Col: len([]rune(line))}
}

// All returns the range covering the entire document.
func All(d Document) types.Range {
	return types.Range{Start: types.Position{}, End: End(d)}
}
