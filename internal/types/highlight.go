package types

// StyledRange marks a span of a single line with a named style.
// Columns are rune indices; End is exclusive.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string // e.g. "keyword", "string", "comment"
}
