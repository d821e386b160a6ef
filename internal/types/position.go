// internal/types/position.go
package types

// Position represents a cursor or text position within a document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Less reports whether p comes before other in document order.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is a half-open span of text [Start, End).
// A collapsed range (Start == End) addresses an insertion point.
type Range struct {
	Start Position
	End   Position
}

// At returns a collapsed range at pos.
func At(pos Position) Range {
	return Range{Start: pos, End: pos}
}

// Collapsed reports whether the range spans no text.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Normalize returns r with Start and End in document order.
func (r Range) Normalize() Range {
	if r.End.Less(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}
