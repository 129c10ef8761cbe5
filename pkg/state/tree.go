// Package state builds the store's state tree: a fixed-shape tree of named
// slots whose leaves are reactive cells.
package state

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/strata/pkg/reactive"
)

var (
	// ErrUnknownKey is returned when writing a key that was not present at construction.
	ErrUnknownKey = errors.New("unknown state key")

	// ErrNotLeaf is returned when writing over an interior node.
	ErrNotLeaf = errors.New("state key is not a leaf")
)

// node is one interior level of the tree.
type node struct {
	keys     []string
	cells    map[string]*reactive.Cell
	children map[string]*node
}

// Tree is a view over one level of the state tree. Views created by Tracked
// record every leaf they read on the given tracker; views created by Writable
// present their token to the graph's write check.
type Tree struct {
	n     *node
	tr    *reactive.Tracker
	token any
}

// Build wraps a nested plain-data map into a tree. Values of type map[string]any
// become nested trees; every other value, slices included, is stored as an opaque
// leaf. A nil map yields an empty tree.
func Build(g *reactive.Graph, data map[string]any) *Tree {
	return &Tree{n: build(g, data)}
}

func build(g *reactive.Graph, data map[string]any) *node {
	n := &node{
		keys:     make([]string, 0, len(data)),
		cells:    make(map[string]*reactive.Cell),
		children: make(map[string]*node),
	}
	for k, v := range data {
		n.keys = append(n.keys, k)
		if child, ok := v.(map[string]any); ok {
			n.children[k] = build(g, child)
			continue
		}
		n.cells[k] = g.NewCell(v)
	}
	sort.Strings(n.keys)
	return n
}

// Tracked returns a view of the same level that reports reads to tr.
func (t *Tree) Tracked(tr *reactive.Tracker) *Tree {
	return &Tree{n: t.n, tr: tr, token: t.token}
}

// Writable returns a view of the same level whose writes carry token.
func (t *Tree) Writable(token any) *Tree {
	return &Tree{n: t.n, tr: t.tr, token: token}
}

// Keys returns the keys of this level in sorted order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.n.keys))
	copy(out, t.n.keys)
	return out
}

// Lookup returns the value stored under key. Interior keys yield a *Tree.
func (t *Tree) Lookup(key string) (any, bool) {
	if c, ok := t.n.cells[key]; ok {
		return c.Get(t.tr), true
	}
	if child, ok := t.n.children[key]; ok {
		return &Tree{n: child, tr: t.tr, token: t.token}, true
	}
	return nil, false
}

// Get is Lookup without the presence flag; unknown keys read as nil.
func (t *Tree) Get(key string) any {
	v, _ := t.Lookup(key)
	return v
}

// Sub returns the nested tree under key, or nil if key is not an interior node.
func (t *Tree) Sub(key string) *Tree {
	child, ok := t.n.children[key]
	if !ok {
		return nil
	}
	return &Tree{n: child, tr: t.tr, token: t.token}
}

// At walks path and returns the value found there.
func (t *Tree) At(path ...string) (any, bool) {
	if len(path) == 0 {
		return t, true
	}
	cur := t
	for _, key := range path[:len(path)-1] {
		cur = cur.Sub(key)
		if cur == nil {
			return nil, false
		}
	}
	return cur.Lookup(path[len(path)-1])
}

// Set writes a leaf. The write is subject to the graph's write check.
func (t *Tree) Set(key string, v any) error {
	c, err := t.leaf(key)
	if err != nil {
		return err
	}
	return c.SetAs(t.token, v)
}

func (t *Tree) leaf(key string) (*reactive.Cell, error) {
	if c, ok := t.n.cells[key]; ok {
		return c, nil
	}
	if _, interior := t.n.children[key]; interior {
		return nil, fmt.Errorf("%w: %q", ErrNotLeaf, key)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// SetAt writes the leaf found at path.
func (t *Tree) SetAt(path []string, v any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrNotLeaf)
	}
	cur := t
	for _, key := range path[:len(path)-1] {
		next := cur.Sub(key)
		if next == nil {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		cur = next
	}
	return cur.Set(path[len(path)-1], v)
}

// Update replaces the leaf under key with fn applied to its current value.
// The current value is read untracked.
func (t *Tree) Update(key string, fn func(old any) any) error {
	c, err := t.leaf(key)
	if err != nil {
		return err
	}
	return c.SetAs(t.token, fn(c.Peek()))
}

// ToMap copies the current values into plain nested maps without tracking.
func (t *Tree) ToMap() map[string]any {
	out := make(map[string]any, len(t.n.keys))
	for k, c := range t.n.cells {
		out[k] = c.Peek()
	}
	for k, child := range t.n.children {
		out[k] = (&Tree{n: child}).ToMap()
	}
	return out
}

// As reads the value at path and asserts it to T.
func As[T any](t *Tree, path ...string) (T, bool) {
	var zero T
	v, ok := t.At(path...)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
