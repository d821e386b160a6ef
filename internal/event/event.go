// internal/event/event.go
package event

// Kind identifies what raw widget operation produced a change notification.
// It is a tag only; the coalesced signal carries no payload.
type Kind int

const (
	KindUnknown Kind = iota

	KindTextInserted // raw "insert"
	KindTextDeleted  // raw "delete"
	KindTextReplaced // raw "replace"
	KindCursorMoved  // raw "mark set insert"
	KindScrolled     // raw "xview"/"yview" with "moveto"/"scroll"
)

// String returns a readable name for logging.
func (k Kind) String() string {
	switch k {
	case KindTextInserted:
		return "text-inserted"
	case KindTextDeleted:
		return "text-deleted"
	case KindTextReplaced:
		return "text-replaced"
	case KindCursorMoved:
		return "cursor-moved"
	case KindScrolled:
		return "scrolled"
	default:
		return "unknown"
	}
}

// ChangeEvent is the coalesced "visible content or scroll position may have
// changed" signal handed to subscribers.
type ChangeEvent struct {
	Kind Kind
}

// Classify maps a raw widget operation to a ChangeEvent. The second return
// is false for operations that do not affect visible content or scroll
// position; those produce no notification.
//
// The recognized operations mirror the mutation commands a text widget
// issues: text edits, the insertion-cursor mark moving, and horizontal or
// vertical view changes.
func Classify(op string, args ...string) (ChangeEvent, bool) {
	switch op {
	case "insert":
		return ChangeEvent{Kind: KindTextInserted}, true
	case "delete":
		return ChangeEvent{Kind: KindTextDeleted}, true
	case "replace":
		return ChangeEvent{Kind: KindTextReplaced}, true
	case "mark":
		if len(args) >= 2 && args[0] == "set" && args[1] == "insert" {
			return ChangeEvent{Kind: KindCursorMoved}, true
		}
	case "xview", "yview":
		if len(args) >= 1 && (args[0] == "moveto" || args[0] == "scroll") {
			return ChangeEvent{Kind: KindScrolled}, true
		}
	}
	return ChangeEvent{}, false
}
