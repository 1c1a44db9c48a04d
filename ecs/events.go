package ecs

import "sync"

// EventKind names a host notification. Handlers receive no payload and must
// re-read whatever world state they need.
type EventKind string

const (
	EventSceneUpdated EventKind = "scene_updated"
	EventFrameChanged EventKind = "frame_changed"
	EventFileLoaded   EventKind = "file_loaded"
	EventRedraw       EventKind = "redraw"
)

// Handler is called synchronously by Publish.
type Handler func()

type subscriber struct {
	id uint64
	fn Handler
}

// Bus delivers events to subscribers in subscription order.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[EventKind][]subscriber
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: map[EventKind][]subscriber{}}
}

// Subscribe registers fn for kind. The returned handle is the only way to
// unsubscribe.
func (b *Bus) Subscribe(kind EventKind, fn Handler) *Subscription {
	if b == nil || fn == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = map[EventKind][]subscriber{}
	}
	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], subscriber{id: b.nextID, fn: fn})
	return &Subscription{bus: b, kind: kind, id: b.nextID}
}

// Publish calls every handler for kind and returns how many ran. Handlers
// may subscribe or unsubscribe while being called; changes apply to the next
// Publish.
func (b *Bus) Publish(kind EventKind) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	subs := append([]subscriber(nil), b.handlers[kind]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn()
	}
	return len(subs)
}

// Count reports the number of live subscriptions for kind.
func (b *Bus) Count(kind EventKind) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}

func (b *Bus) unsubscribe(kind EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[kind]
	for i, s := range subs {
		if s.id == id {
			b.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Subscription is a live registration on a Bus.
type Subscription struct {
	bus    *Bus
	kind   EventKind
	id     uint64
	closed bool
}

// Kind returns the event kind this subscription listens to.
func (s *Subscription) Kind() EventKind {
	if s == nil {
		return ""
	}
	return s.kind
}

// Active reports whether Close has not been called yet.
func (s *Subscription) Active() bool {
	return s != nil && !s.closed
}

// Close unsubscribes. Calling it more than once is a no-op.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.bus.unsubscribe(s.kind, s.id)
}
