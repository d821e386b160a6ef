// Package highlighter computes syntax highlights with tree-sitter. Parsing
// is non-incremental: every call rescans the whole source, which matches
// how the widget currently triggers it.
package highlighter

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"

	"github.com/nibpad/nib/internal/types"
)

//go:embed queries/go/highlights.scm
var goHighlightsQuery []byte

// HighlightResult maps line number to the styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// Highlighter parses source text and runs the highlight query over it.
// Only Go is wired up for now; language detection by file name comes later.
type Highlighter struct {
	parser *sitter.Parser
	lang   *sitter.Language
	query  *sitter.Query
}

// NewHighlighter creates a highlighter for Go source.
func NewHighlighter() (*Highlighter, error) {
	lang := gosrc.GetLanguage()
	query, err := sitter.NewQuery(goHighlightsQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to parse highlight query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{parser: parser, lang: lang, query: query}, nil
}

// Highlight parses source and returns per-line styled ranges.
func (h *Highlighter) Highlight(ctx context.Context, source []byte) (HighlightResult, error) {
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	lines := bytes.Split(source, []byte("\n"))

	qc := sitter.NewQueryCursor()
	qc.Exec(h.query, tree.RootNode())

	result := make(HighlightResult)
	for {
		match, exists := qc.NextMatch()
		if !exists {
			break
		}
		for _, capture := range match.Captures {
			styleName := h.query.CaptureNameForId(capture.Index)
			h.addCapture(result, lines, capture.Node, styleName)
		}
	}
	return result, nil
}

// addCapture converts a captured node's byte-column span into per-line
// rune-column styled ranges.
func (h *Highlighter) addCapture(result HighlightResult, lines [][]byte, node *sitter.Node, styleName string) {
	start := node.StartPoint()
	end := node.EndPoint()

	for row := int(start.Row); row <= int(end.Row); row++ {
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]

		startByte := 0
		if row == int(start.Row) {
			startByte = int(start.Column)
		}
		endByte := len(line)
		if row == int(end.Row) {
			endByte = int(end.Column)
		}
		if startByte >= endByte {
			continue
		}

		result[row] = append(result[row], types.StyledRange{
			StartCol:  byteOffsetToRuneIndex(line, startByte),
			EndCol:    byteOffsetToRuneIndex(line, endByte),
			StyleName: styleName,
		})
	}
}

// byteOffsetToRuneIndex converts a byte offset to a rune index in a line.
func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}
