// Package notify surfaces failed lookups to the user. Implementations carry no
// state back into the caller and never retry.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Event describes one failed, non-superseded lookup.
type Event struct {
	Message string
	Seq     uint64
}

// Notifier receives failure events.
type Notifier interface {
	Notify(Event)
}

// Func adapts a function to the Notifier interface.
type Func func(Event)

// Notify calls f.
func (f Func) Notify(e Event) {
	f(e)
}

// Nop discards every event.
var Nop Notifier = Func(func(Event) {})

// Logging logs each event at warn level before forwarding it to next.
func Logging(logger *zap.Logger, next Notifier) Notifier {
	if next == nil {
		next = Nop
	}
	return Func(func(e Event) {
		logger.Warn("notifying user of failed fetch",
			zap.String("message", e.Message),
			zap.Uint64("seq", e.Seq),
		)
		next.Notify(e)
	})
}

// Writer prints the event message as a single line.
func Writer(w io.Writer) Notifier {
	return Func(func(e Event) {
		_, _ = fmt.Fprintln(w, e.Message)
	})
}

// Toast keeps the most recent event until it is taken.
type Toast struct {
	mu      sync.Mutex
	pending *Event
}

// Notify stores e, replacing any event not yet taken.
func (t *Toast) Notify(e Event) {
	t.mu.Lock()
	t.pending = &e
	t.mu.Unlock()
}

// Take returns and clears the pending event.
func (t *Toast) Take() (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return Event{}, false
	}
	e := *t.pending
	t.pending = nil
	return e, true
}
