/*
Package strata is a single-store state container with memoized getters, guarded mutations and asynchronous actions.

Application state lives in one tree owned by a Store. Anyone may read it; it changes only through named, synchronous mutations, committed directly or from actions. Getters derive values from state and other getters and are recomputed lazily, only after a state leaf they actually read has changed. Subscribers observe every committed mutation.

# Concept

	view --Dispatch--> action --Commit--> mutation --writes--> state --reads--> getters --> view

The state tree has a fixed shape: nested maps become subtrees, everything else is a leaf. Each leaf is a reactive cell. Reading a leaf inside a getter records a dependency; writing a leaf marks every dependent getter stale. A stale getter re-runs on its next read and collects its dependencies again, so conditional reads are tracked precisely.

In strict mode (the default) writing state outside a mutation handler fails with domain.ErrStateMutationOutsideCommit.

# Usage

	store, err := strata.New(
		strata.WithState(map[string]any{"count": 0}),
		strata.WithMutation("increment", func(ctx context.Context, s *strata.State, p any) error {
			return s.Update("count", func(old any) any { return old.(int) + p.(int) })
		}),
		strata.WithGetter("even", func(s *strata.State, _ *strata.Getters) any {
			return s.Get("count").(int)%2 == 0
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_ = store.Commit(ctx, "increment", 1)
	fmt.Println(store.Getters().Get("even")) // false

Actions return a Future. Handlers that need to wait use ActionContext.Async:

	strata.WithAction("load", func(ctx context.Context, ac *strata.ActionContext, p any) (any, error) {
		return ac.Async(ctx, func(ctx context.Context) (any, error) {
			time.Sleep(10 * time.Millisecond)
			return nil, ac.Commit(ctx, "increment", 1)
		}), nil
	})

# Profiles

WithValidation(false) is the production profile: duplicate registrations are ignored (the first wins), type checks are skipped and the write guard is not installed.
*/
package strata
