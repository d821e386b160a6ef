package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibpad/nib/internal/types"
)

// ErrOutOfRange is returned when a position or range falls outside the
// document.
var ErrOutOfRange = errors.New("position out of range")

// LineDocument stores text as a slice of rune slices, one per line.
// Column indices are rune indices, which keeps multi-byte characters from
// corrupting range arithmetic.
type LineDocument struct {
	lines  [][]rune
	cursor types.Position
}

// NewLineDocument creates an empty document holding a single empty line.
func NewLineDocument() *LineDocument {
	return &LineDocument{lines: [][]rune{{}}}
}

// NewLineDocumentFromText creates a document pre-loaded with text.
func NewLineDocumentFromText(text string) *LineDocument {
	d := NewLineDocument()
	if text != "" {
		if err := d.Replace(types.At(types.Position{}), text); err != nil {
			// Inserting into a fresh document at the origin cannot fail.
			panic(fmt.Sprintf("document: initial insert failed: %v", err))
		}
	}
	d.cursor = types.Position{}
	return d
}

// Text returns the full document text.
func (d *LineDocument) Text() string {
	var sb strings.Builder
	for i, line := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// LineCount returns the number of lines.
func (d *LineDocument) LineCount() int {
	return len(d.lines)
}

// Line returns the text of the line at index.
func (d *LineDocument) Line(index int) (string, error) {
	if index < 0 || index >= len(d.lines) {
		return "", fmt.Errorf("line %d: %w", index, ErrOutOfRange)
	}
	return string(d.lines[index]), nil
}

// Cursor returns the current cursor position.
func (d *LineDocument) Cursor() types.Position {
	return d.cursor
}

// SetCursor moves the cursor, clamping to the nearest valid position.
func (d *LineDocument) SetCursor(pos types.Position) {
	d.cursor = d.clamp(pos)
}

// Clear resets the document to a single empty line and homes the cursor.
func (d *LineDocument) Clear() {
	d.lines = [][]rune{{}}
	d.cursor = types.Position{}
}

// TextRange returns the text within r.
func (d *LineDocument) TextRange(r types.Range) (string, error) {
	r = r.Normalize()
	if err := d.validate(r.Start); err != nil {
		return "", err
	}
	if err := d.validate(r.End); err != nil {
		return "", err
	}
	if r.Start.Line == r.End.Line {
		return string(d.lines[r.Start.Line][r.Start.Col:r.End.Col]), nil
	}
	var sb strings.Builder
	sb.WriteString(string(d.lines[r.Start.Line][r.Start.Col:]))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(d.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines[r.End.Line][:r.End.Col]))
	return sb.String(), nil
}

// Replace substitutes the text within r and leaves the cursor at the end of
// the inserted text.
func (d *LineDocument) Replace(r types.Range, text string) error {
	r = r.Normalize()
	if err := d.validate(r.Start); err != nil {
		return err
	}
	if err := d.validate(r.End); err != nil {
		return err
	}

	head := d.lines[r.Start.Line][:r.Start.Col]
	tail := d.lines[r.End.Line][r.End.Col:]

	segments := strings.Split(text, "\n")
	newLines := make([][]rune, 0, len(segments))

	first := append(append([]rune{}, head...), []rune(segments[0])...)
	if len(segments) == 1 {
		d.cursor = types.Position{Line: r.Start.Line, Col: len(first)}
		newLines = append(newLines, append(first, tail...))
	} else {
		newLines = append(newLines, first)
		for i := 1; i < len(segments)-1; i++ {
			newLines = append(newLines, []rune(segments[i]))
		}
		last := []rune(segments[len(segments)-1])
		d.cursor = types.Position{
			Line: r.Start.Line + len(segments) - 1,
			Col:  len(last),
		}
		newLines = append(newLines, append(last, tail...))
	}

	replaced := append([][]rune{}, d.lines[:r.Start.Line]...)
	replaced = append(replaced, newLines...)
	replaced = append(replaced, d.lines[r.End.Line+1:]...)
	d.lines = replaced
	return nil
}

// validate checks that pos addresses an existing line and a column within
// it. Col == line length is valid (the insertion point past the last rune).
func (d *LineDocument) validate(pos types.Position) error {
	if pos.Line < 0 || pos.Line >= len(d.lines) {
		return fmt.Errorf("line %d: %w", pos.Line, ErrOutOfRange)
	}
	if pos.Col < 0 || pos.Col > len(d.lines[pos.Line]) {
		return fmt.Errorf("line %d col %d: %w", pos.Line, pos.Col, ErrOutOfRange)
	}
	return nil
}

// clamp returns the valid position nearest to pos.
func (d *LineDocument) clamp(pos types.Position) types.Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(d.lines) {
		pos.Line = len(d.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if max := len(d.lines[pos.Line]); pos.Col > max {
		pos.Col = max
	}
	return pos
}
