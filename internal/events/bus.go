package events

import "sync"

// recentCap bounds the ring of retained events served by the status
// endpoint.
const recentCap = 32

// Bus provides in-process pub/sub for pipeline observability. Slow
// subscribers drop events rather than block the publisher. The most
// recent events are retained for polling consumers.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan any
	recent []any
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe() <-chan any {
	ch := make(chan any, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bus) Publish(ev any) {
	b.mu.Lock()
	b.recent = append(b.recent, ev)
	if len(b.recent) > recentCap {
		b.recent = b.recent[len(b.recent)-recentCap:]
	}
	subs := append([]chan any(nil), b.subs...)
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Recent returns the retained events, oldest first.
func (b *Bus) Recent() []any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]any(nil), b.recent...)
}
