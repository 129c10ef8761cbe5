package state_test

import (
	"errors"
	"testing"

	"github.com/aretw0/strata/pkg/reactive"
	"github.com/aretw0/strata/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(data map[string]any) *state.Tree {
	return state.Build(reactive.NewGraph(), data)
}

func TestBuild_Shape(t *testing.T) {
	tree := newTree(map[string]any{
		"count": 1,
		"tags":  []string{"a", "b"},
		"user": map[string]any{
			"name": "ada",
			"address": map[string]any{
				"city": "london",
			},
		},
	})

	assert.Equal(t, []string{"count", "tags", "user"}, tree.Keys())
	assert.Equal(t, 1, tree.Get("count"))
	assert.Equal(t, []string{"a", "b"}, tree.Get("tags"), "slices stay opaque leaves")

	user := tree.Sub("user")
	require.NotNil(t, user)
	assert.Equal(t, []string{"address", "name"}, user.Keys())

	city, ok := state.As[string](tree, "user", "address", "city")
	assert.True(t, ok)
	assert.Equal(t, "london", city)

	_, isTree := tree.Get("user").(*state.Tree)
	assert.True(t, isTree)

	assert.Nil(t, tree.Get("missing"))
	assert.Nil(t, tree.Sub("count"))
}

func TestBuild_Empty(t *testing.T) {
	tree := newTree(nil)
	assert.Empty(t, tree.Keys())
	assert.Empty(t, tree.ToMap())
}

func TestSet_FixedShape(t *testing.T) {
	tree := newTree(map[string]any{
		"a":    1,
		"user": map[string]any{"name": "ada"},
	})

	require.NoError(t, tree.Set("a", 2))
	assert.Equal(t, 2, tree.Get("a"))

	assert.ErrorIs(t, tree.Set("b", 1), state.ErrUnknownKey)
	assert.ErrorIs(t, tree.Set("user", "flat"), state.ErrNotLeaf)
	assert.ErrorIs(t, tree.SetAt([]string{"nope", "name"}, "x"), state.ErrUnknownKey)

	require.NoError(t, tree.SetAt([]string{"user", "name"}, "grace"))
	name, _ := state.As[string](tree, "user", "name")
	assert.Equal(t, "grace", name)

	require.NoError(t, tree.Update("a", func(old any) any { return old.(int) * 10 }))
	assert.Equal(t, 20, tree.Get("a"))
	assert.ErrorIs(t, tree.Update("zzz", func(old any) any { return old }), state.ErrUnknownKey)

	called := false
	err := tree.Update("user", func(old any) any { called = true; return old })
	assert.ErrorIs(t, err, state.ErrNotLeaf)
	assert.False(t, called, "fn never runs for an interior key")
}

func TestWrites_GoThroughWriteCheck(t *testing.T) {
	errLocked := errors.New("locked")
	g := reactive.NewGraph(reactive.WithWriteCheck(func(token any) error {
		if token == "key" {
			return nil
		}
		return errLocked
	}))
	tree := state.Build(g, map[string]any{"a": 1, "user": map[string]any{"name": "ada"}})

	assert.ErrorIs(t, tree.Set("a", 2), errLocked)
	assert.ErrorIs(t, tree.Writable("other").Set("a", 2), errLocked)
	assert.Equal(t, 1, tree.Get("a"))

	w := tree.Writable("key")
	require.NoError(t, w.Set("a", 2))
	require.NoError(t, w.Sub("user").Set("name", "grace"), "nested views keep the token")
	require.NoError(t, w.Update("a", func(old any) any { return old.(int) + 1 }))
	assert.Equal(t, 3, tree.Get("a"))
	assert.ErrorIs(t, tree.Sub("user").Set("name", "x"), errLocked)
}

func TestTracked_RegistersReads(t *testing.T) {
	g := reactive.NewGraph()
	tree := state.Build(g, map[string]any{
		"a":    1,
		"b":    2,
		"user": map[string]any{"name": "ada"},
	})

	calls := 0
	c := g.NewComputed(func(tr *reactive.Tracker) any {
		calls++
		s := tree.Tracked(tr)
		name, _ := state.As[string](s, "user", "name")
		return name + "!"
	})

	assert.Equal(t, "ada!", c.Get(nil))

	require.NoError(t, tree.Set("a", 10))
	assert.False(t, c.Dirty(), "unread leaf does not invalidate")

	require.NoError(t, tree.SetAt([]string{"user", "name"}, "grace"))
	assert.Equal(t, "grace!", c.Get(nil))
	assert.Equal(t, 2, calls)
}

func TestToMap(t *testing.T) {
	data := map[string]any{
		"a":    1,
		"user": map[string]any{"name": "ada"},
	}
	tree := newTree(data)
	require.NoError(t, tree.SetAt([]string{"user", "name"}, "grace"))

	assert.Equal(t, map[string]any{
		"a":    1,
		"user": map[string]any{"name": "grace"},
	}, tree.ToMap())
	assert.Equal(t, "ada", data["user"].(map[string]any)["name"], "input map is not aliased")
}
