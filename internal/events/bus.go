package events

import "sync"

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not mutate simulation state.
type Handler func(Event)

// Bus is a synchronous event dispatcher. A single Bus is owned by the
// simulation world and handed to every subsystem at construction.
type Bus struct {
	mu     sync.RWMutex
	byKind map[Kind][]Handler
	all    []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byKind: make(map[Kind][]Handler)}
}

// Subscribe registers a handler for one event kind.
func (b *Bus) Subscribe(k Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byKind[k] = append(b.byKind[k], h)
}

// SubscribeAll registers a handler for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish dispatches an event to kind subscribers, then catch-all
// subscribers, in registration order. A nil Bus drops events, which lets
// leaf components be unit-tested without wiring.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	kindHandlers := b.byKind[e.EventKind()]
	allHandlers := b.all
	b.mu.RUnlock()

	for _, h := range kindHandlers {
		h(e)
	}
	for _, h := range allHandlers {
		h(e)
	}
}
