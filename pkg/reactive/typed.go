package reactive

// Signal is a typed Cell.
type Signal[T any] struct {
	cell *Cell
}

// NewSignal creates a typed cell in g.
func NewSignal[T any](g *Graph, v T) *Signal[T] {
	return &Signal[T]{cell: g.NewCell(v)}
}

// Get returns the current value, the zero T if the cell holds another type.
func (s *Signal[T]) Get(tr *Tracker) T {
	v, _ := s.cell.Get(tr).(T)
	return v
}

// Set writes v through the underlying Cell.
func (s *Signal[T]) Set(v T) error {
	return s.cell.Set(v)
}

// Memo is a typed Computed.
type Memo[T any] struct {
	c *Computed
}

// NewMemo creates a typed lazy computation in g.
func NewMemo[T any](g *Graph, fn func(tr *Tracker) T) *Memo[T] {
	return &Memo[T]{c: g.NewComputed(func(tr *Tracker) any { return fn(tr) })}
}

// Get returns the memoized value, re-evaluating if stale.
func (m *Memo[T]) Get(tr *Tracker) T {
	v, _ := m.c.Get(tr).(T)
	return v
}

// Dirty reports whether the next Get will re-run the function.
func (m *Memo[T]) Dirty() bool {
	return m.c.Dirty()
}
