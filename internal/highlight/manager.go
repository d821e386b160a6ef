// Package highlight triggers syntax rescans off the coalesced change
// signal. The computation itself lives behind the Highlighter interface;
// every qualifying change rescans the whole document.
package highlight

import (
	"context"
	"sync"

	"github.com/nibpad/nib/internal/document"
	"github.com/nibpad/nib/internal/event"
	"github.com/nibpad/nib/internal/highlighter"
	"github.com/nibpad/nib/internal/logger"
)

// Highlighter computes highlights for a full source text.
type Highlighter interface {
	Highlight(ctx context.Context, source []byte) (highlighter.HighlightResult, error)
}

// Manager subscribes to change notifications and keeps the current
// highlight result for the host to render.
type Manager struct {
	mu      sync.Mutex
	doc     document.Document
	hl      Highlighter
	apply   func(highlighter.HighlightResult) // optional host sink
	enabled bool
	current highlighter.HighlightResult
}

// NewManager creates a highlight manager. apply may be nil.
func NewManager(doc document.Document, hl Highlighter, apply func(highlighter.HighlightResult)) *Manager {
	return &Manager{
		doc:     doc,
		hl:      hl,
		apply:   apply,
		enabled: true,
	}
}

// SetEnabled turns rescanning on or off.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// HandleChange is the notifier subscriber. Only content mutations trigger a
// rescan; cursor moves and scrolls leave the highlights valid.
func (m *Manager) HandleChange(e event.ChangeEvent) {
	switch e.Kind {
	case event.KindTextInserted, event.KindTextDeleted, event.KindTextReplaced:
		m.Rescan()
	}
}

// Rescan recomputes highlights for the whole document. A highlighter
// failure keeps the previous result and is logged, never propagated to the
// event source.
func (m *Manager) Rescan() {
	m.mu.Lock()
	if !m.enabled || m.hl == nil {
		m.mu.Unlock()
		return
	}
	source := []byte(m.doc.Text())
	m.mu.Unlock()

	result, err := m.hl.Highlight(context.Background(), source)
	if err != nil {
		logger.Errorf("Highlight: rescan failed: %v", err)
		return
	}

	m.mu.Lock()
	m.current = result
	apply := m.apply
	m.mu.Unlock()

	logger.DebugTagf("highlight", "Rescan complete: %d highlighted lines", len(result))
	if apply != nil {
		apply(result)
	}
}

// Current returns the most recent highlight result.
func (m *Manager) Current() highlighter.HighlightResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}
