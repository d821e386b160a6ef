package gutter

import "testing"

type fixedLines int

func (f fixedLines) LineCount() int { return int(f) }

func TestRefreshWalksVisibleLines(t *testing.T) {
	g := New(4)
	labels := g.Refresh(fixedLines(100), 10, 5)

	if len(labels) != 5 {
		t.Fatalf("label count = %d, want 5", len(labels))
	}
	if labels[0].Line != 10 || labels[0].Text != "  11" {
		t.Errorf("first label = %+v, want line 10 text %q", labels[0], "  11")
	}
	if labels[4].Line != 14 || labels[4].Text != "  15" {
		t.Errorf("last label = %+v, want line 14 text %q", labels[4], "  15")
	}
}

func TestRefreshStopsAtDocumentEnd(t *testing.T) {
	g := New(4)
	labels := g.Refresh(fixedLines(3), 1, 10)

	if len(labels) != 2 {
		t.Fatalf("label count = %d, want 2 (lines 2 and 3)", len(labels))
	}
	if labels[1].Text != "   3" {
		t.Errorf("last label text = %q, want %q", labels[1].Text, "   3")
	}
}

func TestFontStepsDownPastFourDigits(t *testing.T) {
	g := New(5)
	labels := g.Refresh(fixedLines(20000), 9997, 5)

	// Lines 9998..10002 display numbers 9998..10002.
	for _, l := range labels {
		wantSize := FontSize
		if l.Line+1 > 9999 {
			wantSize = SmallFontSize
		}
		if l.FontSize != wantSize {
			t.Errorf("line %d font = %d, want %d", l.Line+1, l.FontSize, wantSize)
		}
	}
}

func TestUnboundedViewportWalksToEnd(t *testing.T) {
	g := New(4)
	labels := g.Refresh(fixedLines(7), 0, -1)
	if len(labels) != 7 {
		t.Errorf("label count = %d, want all 7 lines", len(labels))
	}
}

func TestWidthForLines(t *testing.T) {
	cases := []struct {
		lines, min, want int
	}{
		{9, 4, 4},
		{9999, 4, 4},
		{10000, 4, 5},
		{123456, 3, 6},
	}
	for _, c := range cases {
		if got := WidthForLines(c.lines, c.min); got != c.want {
			t.Errorf("WidthForLines(%d, %d) = %d, want %d", c.lines, c.min, got, c.want)
		}
	}
}
