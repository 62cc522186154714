// Package event is a small synchronous dispatcher. The cart service reports
// consolidation progress through it and the console prints what it hears.
package event

import (
	"sync"
)

// Handler receives an event payload.
type Handler func(payload interface{})

// Bus holds listeners by event name. The zero value is ready to use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// Listen registers handler for event.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = map[string][]Handler{}
	}
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches payload synchronously, in registration order. Firing on a
// nil bus is a no-op.
func (b *Bus) Fire(event string, payload interface{}) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
