// Package gutter computes the line-number labels for the widget's gutter.
// It is a pure model: the host renders the labels, this package only decides
// what they say and how big they are.
package gutter

import "strconv"

// Past this many digits the label font steps down so wide numbers keep
// fitting the fixed-width gutter.
const DigitThreshold = 4

const (
	FontSize      = 10
	SmallFontSize = 7
)

// Label is one rendered line number.
type Label struct {
	Line     int    // 0-based document line index
	Text     string // 1-based number, right-aligned to the gutter width
	FontSize int
}

// LineCounter is the slice of the document the gutter needs.
type LineCounter interface {
	LineCount() int
}

// Gutter holds the current label set for a viewport.
type Gutter struct {
	width  int
	labels []Label
}

// New creates a gutter with the given fixed character width.
func New(width int) *Gutter {
	if width <= 0 {
		width = DigitThreshold
	}
	return &Gutter{width: width}
}

// Width returns the gutter's fixed character width.
func (g *Gutter) Width() int {
	return g.width
}

// Labels returns the most recently computed label set.
func (g *Gutter) Labels() []Label {
	return g.labels
}

// Refresh recomputes the labels by walking forward from the first visible
// line until either the viewport is filled or no further line exists.
// This runs on every coalesced change notification.
func (g *Gutter) Refresh(doc LineCounter, firstVisible, visibleLines int) []Label {
	if firstVisible < 0 {
		firstVisible = 0
	}
	labels := g.labels[:0]
	total := doc.LineCount()
	for line := firstVisible; line < total; line++ {
		if visibleLines >= 0 && line-firstVisible >= visibleLines {
			break
		}
		number := line + 1
		text := strconv.Itoa(number)
		size := FontSize
		if len(text) > DigitThreshold {
			size = SmallFontSize
		}
		labels = append(labels, Label{
			Line:     line,
			Text:     padLeft(text, g.width),
			FontSize: size,
		})
	}
	g.labels = labels
	return labels
}

// padLeft right-aligns s in a field of the given width. Numbers wider than
// the field are returned as-is; the font downshift keeps them legible.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// WidthForLines returns the character width needed for the given line
// count, with a floor of minWidth.
func WidthForLines(lineCount, minWidth int) int {
	digits := len(strconv.Itoa(lineCount))
	if digits < minWidth {
		return minWidth
	}
	return digits
}
