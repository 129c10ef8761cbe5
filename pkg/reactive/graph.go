package reactive

import (
	"errors"
	"sync"
)

// ErrCycle is the panic value raised when a computation reads itself,
// directly or through other computations.
var ErrCycle = errors.New("reactive: dependency cycle")

// Graph owns the bookkeeping shared by its cells and computations.
// Safe for concurrent use.
type Graph struct {
	mu    sync.Mutex
	check func(token any) error
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithWriteCheck installs a check that runs before every Cell write. It
// receives the token the writer passed to SetAs, nil for plain Set.
// A non-nil error rejects the write and is returned to the writer unchanged.
func WithWriteCheck(check func(token any) error) GraphOption {
	return func(g *Graph) {
		g.check = check
	}
}

// NewGraph creates an empty dependency graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tracker collects the reads performed while one Computed evaluates.
// A nil Tracker reads without registering anything.
type Tracker struct {
	owner  *Computed
	parent *Tracker // tracker of the evaluation that triggered this one
}

// evaluating reports whether c is being evaluated further up this chain.
func (t *Tracker) evaluating(c *Computed) bool {
	for ; t != nil; t = t.parent {
		if t.owner == c {
			return true
		}
	}
	return false
}

// observe links the tracker's owner to src. Caller holds the graph lock.
func (t *Tracker) observe(src *source) {
	if t == nil || t.owner == nil {
		return
	}
	if src.subs == nil {
		src.subs = make(map[*Computed]struct{})
	}
	src.subs[t.owner] = struct{}{}
	t.owner.deps = append(t.owner.deps, src)
}

// source is the dependent set of a readable node.
type source struct {
	subs map[*Computed]struct{}
}

// invalidate marks every dependent stale, once each. Caller holds the graph lock.
func (s *source) invalidate() {
	for c := range s.subs {
		c.invalidate()
	}
}
