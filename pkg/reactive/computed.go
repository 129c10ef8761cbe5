package reactive

import (
	"sync"
	"sync/atomic"
)

// Computed is a memoized derivation over cells and other computations.
//
// Invalidation only bumps a version counter; the function re-runs on the next
// Get. The cached value is valid exactly when it was computed at the current
// version. A computation must not read itself, directly or through others.
type Computed struct {
	g    *Graph
	fn   func(tr *Tracker) any
	src  source
	deps []*source // guarded by g.mu

	version atomic.Uint64

	mu    sync.Mutex // serializes evaluation
	ready bool
	at    uint64
	value any
}

// NewComputed creates a lazy computation. Nothing runs until the first Get.
func (g *Graph) NewComputed(fn func(tr *Tracker) any) *Computed {
	return &Computed{g: g, fn: fn}
}

// Get returns the cached value, re-evaluating first if it is stale. When tr is
// non-nil the tracker's owner becomes a dependent of this computation.
// Reading a computation from inside its own evaluation panics with ErrCycle.
func (c *Computed) Get(tr *Tracker) any {
	if tr.evaluating(c) {
		panic(ErrCycle)
	}
	if tr != nil && tr.owner != nil {
		c.g.mu.Lock()
		tr.observe(&c.src)
		c.g.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready && c.at == c.version.Load() {
		return c.value
	}
	c.evaluate(tr)
	return c.value
}

// Dirty reports whether the next Get will re-run the function.
func (c *Computed) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.ready || c.at != c.version.Load()
}

// Dispose drops every dependency link so writes no longer reach c.
// A later Get re-evaluates and links again.
func (c *Computed) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.g.mu.Lock()
	c.unlink()
	c.g.mu.Unlock()
	c.ready = false
}

// unlink removes c from every source it read. Caller holds the graph lock.
func (c *Computed) unlink() {
	for _, d := range c.deps {
		delete(d.subs, c)
	}
	c.deps = c.deps[:0]
}

// evaluate drops the previous read-set and runs fn under a fresh tracker
// chained to the caller's. Caller holds c.mu.
func (c *Computed) evaluate(caller *Tracker) {
	at := c.version.Load()

	c.g.mu.Lock()
	c.unlink()
	c.g.mu.Unlock()

	v := c.fn(&Tracker{owner: c, parent: caller})
	c.value, c.at, c.ready = v, at, true
}

// invalidate marks c and everything reading it stale. Caller holds the graph lock.
func (c *Computed) invalidate() {
	c.version.Add(1)
	c.src.invalidate()
}
