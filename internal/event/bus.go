package event

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	pattern string
	id      uint64
}

// Bus is a synchronous pub/sub bus. Handlers run on the publishing
// goroutine in subscription order. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]busEntry // pattern -> handlers
	nextID atomic.Uint64

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
}

type busEntry struct {
	id      uint64
	handler Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]busEntry),
	}
}

// Subscribe registers a handler for a topic pattern and returns a
// subscription handle for Unsubscribe.
func (b *Bus) Subscribe(pattern string, fn Handler) Subscription {
	id := b.nextID.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[pattern] = append(b.subs[pattern], busEntry{id: id, handler: fn})

	return Subscription{pattern: pattern, id: id}
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.subs[sub.pattern]
	for i, e := range entries {
		if e.id == sub.id {
			b.subs[sub.pattern] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.pattern]) == 0 {
		delete(b.subs, sub.pattern)
	}
}

// Publish delivers an event to every subscription whose pattern matches
// the event's topic.
func (b *Bus) Publish(ev Event) {
	b.eventsPublished.Add(1)

	b.mu.RLock()
	var handlers []Handler
	for pattern, entries := range b.subs {
		if !Match(pattern, ev.Topic) {
			continue
		}
		for _, e := range entries {
			handlers = append(handlers, e.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
		b.eventsDelivered.Add(1)
	}
}

// Stats reports bus activity counters.
type Stats struct {
	EventsPublished uint64
	EventsDelivered uint64
}

// Stats returns the bus activity counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished: b.eventsPublished.Load(),
		EventsDelivered: b.eventsDelivered.Load(),
	}
}

// Match reports whether a subscription pattern matches a topic.
// A trailing "*" segment matches exactly one segment; a trailing "**"
// matches any remainder, including none.
func Match(pattern, topic string) bool {
	if pattern == topic {
		return true
	}

	switch {
	case pattern == "**":
		return true
	case strings.HasSuffix(pattern, ".**"):
		prefix := strings.TrimSuffix(pattern, ".**")
		return topic == prefix || strings.HasPrefix(topic, prefix+".")
	case strings.HasSuffix(pattern, ".*"):
		prefix := strings.TrimSuffix(pattern, ".*")
		rest, ok := strings.CutPrefix(topic, prefix+".")
		return ok && rest != "" && !strings.Contains(rest, ".")
	default:
		return false
	}
}
