package runtime

import "sync"

type entry[T any] struct {
	id uint64
	fn T
}

// subscribers is an ordered set of callbacks with handle-based removal.
type subscribers[T any] struct {
	mu      sync.Mutex
	next    uint64
	entries []entry[T]
}

func (s *subscribers[T]) add(fn T) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.entries = append(s.entries, entry[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *subscribers[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

// snapshot copies the current callbacks so that changes made while notifying
// do not affect the ongoing notification.
func (s *subscribers[T]) snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.fn
	}
	return out
}

func (s *subscribers[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
