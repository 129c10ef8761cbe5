// Package registry stores named handlers for the store's getter, mutation and
// action tables.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps names to handlers of one kind.
// Safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T

	duplicate error
	strict    bool
}

// Option configures a Registry.
type Option func(*settings)

type settings struct {
	strict bool
}

// WithDuplicateCheck toggles rejection of repeated names. Enabled by default.
// When disabled the first registration under a name wins and later ones are dropped.
func WithDuplicateCheck(enabled bool) Option {
	return func(s *settings) {
		s.strict = enabled
	}
}

// New creates an empty registry. duplicate is the sentinel wrapped into the
// error returned for a repeated name.
func New[T any](duplicate error, opts ...Option) *Registry[T] {
	s := settings{strict: true}
	for _, opt := range opts {
		opt(&s)
	}
	return &Registry[T]{
		entries:   make(map[string]T),
		duplicate: duplicate,
		strict:    s.strict,
	}
}

// Register adds fn under name. It reports whether fn was stored.
func (r *Registry[T]) Register(name string, fn T) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		if r.strict {
			return false, fmt.Errorf("%w: %s", r.duplicate, name)
		}
		return false, nil
	}
	r.entries[name] = fn
	return true, nil
}

// Lookup returns the handler registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.entries[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered handlers.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
