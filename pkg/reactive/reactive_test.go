package reactive

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputed_LazyAndMemoized(t *testing.T) {
	g := NewGraph()
	a := g.NewCell(1)

	calls := 0
	double := g.NewComputed(func(tr *Tracker) any {
		calls++
		return a.Get(tr).(int) * 2
	})

	assert.Equal(t, 0, calls, "nothing runs before the first read")
	assert.Equal(t, 2, double.Get(nil))
	assert.Equal(t, 2, double.Get(nil))
	assert.Equal(t, 1, calls)

	require.NoError(t, a.Set(1))
	assert.False(t, double.Dirty(), "same value must not invalidate")

	require.NoError(t, a.Set(2))
	require.NoError(t, a.Set(3))
	assert.Equal(t, 1, calls, "invalidation does not recompute eagerly")
	assert.True(t, double.Dirty())

	assert.Equal(t, 6, double.Get(nil))
	assert.Equal(t, 2, calls, "one recompute per read regardless of write count")
}

func TestComputed_RecollectsDependencies(t *testing.T) {
	g := NewGraph()
	useA := g.NewCell(true)
	a := g.NewCell("a")
	b := g.NewCell("b")

	calls := 0
	pick := g.NewComputed(func(tr *Tracker) any {
		calls++
		if useA.Get(tr).(bool) {
			return a.Get(tr)
		}
		return b.Get(tr)
	})

	assert.Equal(t, "a", pick.Get(nil))
	assert.Equal(t, 1, a.Dependents())
	assert.Equal(t, 0, b.Dependents())

	require.NoError(t, b.Set("b2"))
	assert.Equal(t, "a", pick.Get(nil))
	assert.Equal(t, 1, calls, "unread cell does not invalidate")

	require.NoError(t, useA.Set(false))
	assert.Equal(t, "b2", pick.Get(nil))
	assert.Equal(t, 0, a.Dependents(), "stale link dropped on recompute")
	assert.Equal(t, 1, b.Dependents())

	require.NoError(t, a.Set("a2"))
	assert.False(t, pick.Dirty())
}

func TestComputed_Transitive(t *testing.T) {
	g := NewGraph()
	x := g.NewCell(2)

	innerCalls, outerCalls := 0, 0
	square := g.NewComputed(func(tr *Tracker) any {
		innerCalls++
		v := x.Get(tr).(int)
		return v * v
	})
	plusOne := g.NewComputed(func(tr *Tracker) any {
		outerCalls++
		return square.Get(tr).(int) + 1
	})

	assert.Equal(t, 5, plusOne.Get(nil))
	require.NoError(t, x.Set(3))
	assert.True(t, plusOne.Dirty(), "invalidation propagates through computations")
	assert.Equal(t, 10, plusOne.Get(nil))
	assert.Equal(t, 2, innerCalls)
	assert.Equal(t, 2, outerCalls)
}

func TestComputed_SelfReadPanics(t *testing.T) {
	g := NewGraph()
	var self *Computed
	self = g.NewComputed(func(tr *Tracker) any {
		return self.Get(tr)
	})
	assert.PanicsWithValue(t, ErrCycle, func() { self.Get(nil) })
}

func TestComputed_IndirectCycleFailsFast(t *testing.T) {
	g := NewGraph()
	var a, b *Computed
	a = g.NewComputed(func(tr *Tracker) any { return b.Get(tr) })
	b = g.NewComputed(func(tr *Tracker) any { return a.Get(tr) })

	done := make(chan any, 1)
	go func() {
		defer func() { done <- recover() }()
		a.Get(nil)
	}()

	select {
	case r := <-done:
		assert.Equal(t, ErrCycle, r)
	case <-time.After(2 * time.Second):
		t.Fatal("cyclic computations deadlocked")
	}

	// the locks were released on the way out
	assert.True(t, a.Dirty())
	assert.True(t, b.Dirty())
}

func TestComputed_ConcurrentReadsAreNotCycles(t *testing.T) {
	g := NewGraph()
	c := g.NewCell(1)
	base := g.NewComputed(func(tr *Tracker) any { return c.Get(tr).(int) * 2 })
	left := g.NewComputed(func(tr *Tracker) any { return base.Get(tr).(int) + 1 })
	right := g.NewComputed(func(tr *Tracker) any { return base.Get(tr).(int) + 2 })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 3, left.Get(nil))
			assert.Equal(t, 4, right.Get(nil))
		}()
	}
	wg.Wait()
}

func TestCell_WriteCheck(t *testing.T) {
	errDenied := errors.New("denied")
	allowed := false
	g := NewGraph(WithWriteCheck(func(token any) error {
		if !allowed && token != "admin" {
			return errDenied
		}
		return nil
	}))
	c := g.NewCell(1)

	assert.ErrorIs(t, c.Set(2), errDenied)
	assert.Equal(t, 1, c.Peek())

	require.NoError(t, c.SetAs("admin", 3))
	assert.Equal(t, 3, c.Peek())

	allowed = true
	require.NoError(t, c.Set(2))
	assert.Equal(t, 2, c.Peek())
}

// NaN never equals itself, so rewriting NaN always invalidates. Kept on purpose.
func TestCell_NaNAlwaysInvalidates(t *testing.T) {
	g := NewGraph()
	c := g.NewCell(math.NaN())

	calls := 0
	m := g.NewComputed(func(tr *Tracker) any {
		calls++
		return c.Get(tr)
	})
	m.Get(nil)

	require.NoError(t, c.Set(math.NaN()))
	m.Get(nil)
	assert.Equal(t, 2, calls)
}

func TestChanged(t *testing.T) {
	slice := []int{1, 2}
	m := map[string]int{"a": 1}
	type point struct{ X, Y int }
	type bag struct{ Items []int }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, false},
		{"nil to value", nil, 1, true},
		{"same int", 1, 1, false},
		{"different int", 1, 2, true},
		{"int vs float", 1, 1.0, true},
		{"same string", "x", "x", false},
		{"nan", math.NaN(), math.NaN(), true},
		{"same slice", slice, slice, false},
		{"equal copy of slice", slice, []int{1, 2}, true},
		{"resliced", slice, slice[:1], true},
		{"same map", m, m, false},
		{"other map", m, map[string]int{"a": 1}, true},
		{"equal structs", point{1, 2}, point{1, 2}, false},
		{"uncomparable struct", bag{slice}, bag{slice}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Changed(tt.a, tt.b))
		})
	}
}

func TestTyped(t *testing.T) {
	g := NewGraph()
	name := NewSignal(g, "ada")
	greeting := NewMemo(g, func(tr *Tracker) string {
		return "hello " + name.Get(tr)
	})

	assert.Equal(t, "hello ada", greeting.Get(nil))
	require.NoError(t, name.Set("grace"))
	assert.True(t, greeting.Dirty())
	assert.Equal(t, "hello grace", greeting.Get(nil))
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	g := NewGraph()
	c := g.NewCell(0)
	sum := g.NewComputed(func(tr *Tracker) any {
		return c.Get(tr).(int) + 1
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = c.Set(i)
		}(i)
		go func() {
			defer wg.Done()
			_ = sum.Get(nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, c.Peek().(int)+1, sum.Get(nil))
}

func TestComputed_Dispose(t *testing.T) {
	g := NewGraph()
	c := g.NewCell(1)
	m := g.NewComputed(func(tr *Tracker) any { return c.Get(tr) })

	m.Get(nil)
	assert.Equal(t, 1, c.Dependents())

	m.Dispose()
	assert.Equal(t, 0, c.Dependents())
	assert.True(t, m.Dirty())

	require.NoError(t, c.Set(2))
	assert.Equal(t, 2, m.Get(nil))
}
