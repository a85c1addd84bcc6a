package dispatcher

import (
	"sort"
	"sync"
)

// Registry manages handler registration by exact token name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler for a token, replacing any existing one.
func (r *Registry) Register(token string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[token] = h
}

// Unregister removes the handler for a token.
func (r *Registry) Unregister(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, token)
}

// Lookup returns the handler for a token.
func (r *Registry) Lookup(token string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[token]
	return h, ok
}

// Commands returns the registered token names, sorted.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
