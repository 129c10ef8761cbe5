package reactive

// Cell is a writable leaf value whose readers are tracked.
type Cell struct {
	g     *Graph
	src   source
	value any
}

// NewCell creates a cell holding v.
func (g *Graph) NewCell(v any) *Cell {
	return &Cell{g: g, value: v}
}

// Get returns the current value and, when tr is non-nil, records the
// tracker's owner as a dependent of this cell.
func (c *Cell) Get(tr *Tracker) any {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	tr.observe(&c.src)
	return c.value
}

// Peek returns the current value without tracking.
func (c *Cell) Peek() any {
	return c.Get(nil)
}

// Set replaces the value without a writer token. See SetAs.
func (c *Cell) Set(v any) error {
	return c.SetAs(nil, v)
}

// SetAs replaces the value on behalf of token. When the graph has a write check
// it runs first with token and its error aborts the write. Dependents are
// invalidated only if Changed reports a difference between the old and the new value.
func (c *Cell) SetAs(token, v any) error {
	if c.g.check != nil {
		if err := c.g.check(token); err != nil {
			return err
		}
	}

	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	if Changed(c.value, v) {
		c.src.invalidate()
	}
	c.value = v
	return nil
}

// Dependents reports how many computations currently depend on the cell.
func (c *Cell) Dependents() int {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()
	return len(c.src.subs)
}
