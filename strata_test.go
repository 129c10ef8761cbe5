package strata_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/future"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(key string) strata.MutationFunc {
	return func(ctx context.Context, s *strata.State, p any) error {
		return s.Set(key, p)
	}
}

func TestNew_Defaults(t *testing.T) {
	store, err := strata.New(strata.WithState(map[string]any{"a": 1}))
	require.NoError(t, err)

	err = store.State().Set("a", 2)
	assert.ErrorIs(t, err, domain.ErrStateMutationOutsideCommit, "strict with validation by default")

	err = store.Commit(context.Background(), nil, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidType)
	assert.Contains(t, err.Error(), "nil")
	assert.Equal(t, 1, store.State().Get("a"))
}

func TestNew_Scenario(t *testing.T) {
	store, err := strata.New(
		strata.WithState(map[string]any{"a": 1}),
		strata.WithMutations(map[string]strata.MutationFunc{
			"TEST": func(ctx context.Context, s *strata.State, p any) error {
				return s.Update("a", func(old any) any { return old.(int) + p.(int) })
			},
		}),
	)
	require.NoError(t, err)

	require.NoError(t, store.Commit(context.Background(), "TEST", 2))
	assert.Equal(t, 3, store.State().Get("a"))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	_, err := strata.New(
		strata.WithMutation("m", set("a")),
		strata.WithMutation("m", set("a")),
	)
	assert.ErrorIs(t, err, domain.ErrDuplicateMutation)

	_, err = strata.New(
		strata.WithValidation(false),
		strata.WithMutation("m", set("a")),
		strata.WithMutation("m", set("a")),
	)
	assert.NoError(t, err)
}

func TestNew_GetterCycle(t *testing.T) {
	_, err := strata.New(
		strata.WithGetter("total", func(_ *strata.State, g *strata.Getters) any { return g.Get("share") }),
		strata.WithGetter("share", func(_ *strata.State, g *strata.Getters) any { return g.Get("total") }),
	)
	assert.ErrorIs(t, err, domain.ErrGetterCycle)
}

func TestWithGetters_NestedState(t *testing.T) {
	store, err := strata.New(
		strata.WithState(map[string]any{"user": map[string]any{"name": "ada", "age": 36}}),
		strata.WithMutation("rename", func(ctx context.Context, s *strata.State, p any) error {
			return s.SetAt([]string{"user", "name"}, p)
		}),
		strata.WithGetters(map[string]strata.GetterFunc{
			"greeting": func(s *strata.State, g *strata.Getters) any {
				return "hello " + g.Get("name").(string)
			},
			"name": func(s *strata.State, _ *strata.Getters) any {
				return s.Sub("user").Get("name")
			},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "hello ada", store.Getters().Get("greeting"))
	require.NoError(t, store.Commit(context.Background(), "rename", "grace"))
	assert.Equal(t, "hello grace", store.Getters().Get("greeting"))
}

func TestNaNAlwaysChanges(t *testing.T) {
	calls := 0
	store, err := strata.New(
		strata.WithState(map[string]any{"x": math.NaN()}),
		strata.WithMutation("set", set("x")),
		strata.WithGetter("x", func(s *strata.State, _ *strata.Getters) any {
			calls++
			return s.Get("x")
		}),
	)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	require.NoError(t, store.Commit(context.Background(), "set", math.NaN()))
	store.Getters().Get("x")
	assert.Equal(t, 2, calls, "NaN is never equal to itself")
}

func TestWithLifecycleHooks_Compose(t *testing.T) {
	var first, second int
	store, err := strata.New(
		strata.WithState(map[string]any{"a": 0}),
		strata.WithMutation("set", set("a")),
		strata.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommit: func(context.Context, *domain.CommitEvent) { first++ },
		}),
		strata.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommit: func(context.Context, *domain.CommitEvent) { second++ },
		}),
	)
	require.NoError(t, err)

	require.NoError(t, store.Commit(context.Background(), "set", 1))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestWithPlugin(t *testing.T) {
	var seen []string
	logger := func(s *strata.Store) {
		s.Subscribe(func(ctx context.Context, m strata.MutationRecord, _ *strata.State) {
			seen = append(seen, m.Type)
		})
	}
	store, err := strata.New(
		strata.WithState(map[string]any{"a": 0}),
		strata.WithMutation("set", set("a")),
		strata.WithPlugin(logger),
	)
	require.NoError(t, err)

	require.NoError(t, store.Commit(context.Background(), "set", 4))
	assert.Equal(t, []string{"set"}, seen)
}

func TestDispatch_FanIn(t *testing.T) {
	store, err := strata.New(
		strata.WithState(map[string]any{"n": 0}),
		strata.WithMutation("inc", func(ctx context.Context, s *strata.State, p any) error {
			return s.Update("n", func(old any) any { return old.(int) + 1 })
		}),
		strata.WithAction("inc", func(ctx context.Context, ac *strata.ActionContext, p any) (any, error) {
			return ac.Async(ctx, func(ctx context.Context) (any, error) {
				return p, ac.Commit(ctx, "inc")
			}), nil
		}),
		strata.WithIDGenerator(&counterIDs{}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	var fs []*strata.Future
	for i := 0; i < 10; i++ {
		f, err := store.Dispatch(ctx, "inc", i)
		require.NoError(t, err)
		fs = append(fs, f)
	}
	values, err := future.All(ctx, fs...)
	require.NoError(t, err)
	assert.Len(t, values, 10)
	assert.Equal(t, 9, values[9])
	assert.Equal(t, 10, store.State().Get("n"))
}

func TestWatch(t *testing.T) {
	store, err := strata.New(
		strata.WithState(map[string]any{"a": 0, "log": 0}),
		strata.WithMutation("set", set("a")),
		strata.WithMutation("log", func(ctx context.Context, s *strata.State, p any) error {
			return s.Update("log", func(old any) any { return old.(int) + 1 })
		}),
	)
	require.NoError(t, err)

	store.Watch(func(s *strata.State, _ *strata.Getters) any {
		return s.Get("a")
	}, func(ctx context.Context, newV, oldV any) {
		require.NoError(t, store.Commit(ctx, "log"))
	})

	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, "set", 1))
	require.NoError(t, store.Commit(ctx, "set", 1))
	require.NoError(t, store.Commit(ctx, "set", 2))
	assert.Equal(t, 2, store.State().Get("log"))
}

type counterIDs struct{ n int }

func (r *counterIDs) Generate() string {
	r.n++
	return fmt.Sprintf("id-%d", r.n)
}
