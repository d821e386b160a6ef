// internal/event/notifier.go
package event

import (
	"sync"

	"github.com/nibpad/nib/internal/logger"
)

// Subscriber is a callback invoked for every coalesced change signal.
type Subscriber func(e ChangeEvent)

// Notifier fans a coalesced change signal out to subscribers: line-number
// gutter, highlight trigger, status bar. Dispatch is synchronous and runs
// subscribers in registration order.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a callback. Subscribers are invoked in the order they
// were registered.
func (n *Notifier) Subscribe(s Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, s)
	logger.Debugf("Notifier: subscriber registered, total %d", len(n.subscribers))
}

// Dispatch synchronously invokes all subscribers. A panicking subscriber is
// isolated and logged; the remaining subscribers still run.
func (n *Notifier) Dispatch(e ChangeEvent) {
	n.mu.RLock()
	// Copy so a subscriber registering another subscriber mid-dispatch
	// cannot invalidate the iteration.
	subs := make([]Subscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.RUnlock()

	for _, s := range subs {
		n.invoke(s, e)
	}
}

func (n *Notifier) invoke(s Subscriber, e ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Notifier: subscriber panicked on %v: %v", e.Kind, r)
		}
	}()
	s(e)
}

// Notify classifies a raw operation and dispatches the resulting change
// event, if any. It reports whether a notification was sent.
func (n *Notifier) Notify(op string, args ...string) bool {
	e, ok := Classify(op, args...)
	if !ok {
		return false
	}
	n.Dispatch(e)
	return true
}
