package strata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/payload"
)

func ExampleNew() {
	store, err := strata.New(
		strata.WithState(map[string]any{"todos": []string{}, "filter": map[string]any{"done": false}}),
		strata.WithMutation("add", func(ctx context.Context, s *strata.State, p any) error {
			title, _ := payload.Field(p, "title").(string)
			return s.Update("todos", func(old any) any { return append(old.([]string), title) })
		}),
		strata.WithGetter("count", func(s *strata.State, _ *strata.Getters) any {
			return len(s.Get("todos").([]string))
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store.Subscribe(func(ctx context.Context, m strata.MutationRecord, s *strata.State) {
		fmt.Println("committed", m.Type)
	})

	_ = store.Commit(ctx, "add", "write docs")
	_ = store.Commit(ctx, map[string]any{"type": "add", "title": "ship"})

	fmt.Println(store.Getters().Get("count"))
	fmt.Println(store.State().Get("todos"))
	// Output:
	// committed add
	// committed add
	// 2
	// [write docs ship]
}

func ExampleStore_Dispatch() {
	store, err := strata.New(
		strata.WithState(map[string]any{"a": 1}),
		strata.WithMutation("TEST", func(ctx context.Context, s *strata.State, p any) error {
			return s.Update("a", func(old any) any { return old.(int) + p.(int) })
		}),
		strata.WithAction("TEST", func(ctx context.Context, ac *strata.ActionContext, p any) (any, error) {
			return nil, ac.Commit(ctx, "TEST", p)
		}),
		strata.WithAction("two", func(ctx context.Context, ac *strata.ActionContext, p any) (any, error) {
			return ac.Async(ctx, func(ctx context.Context) (any, error) {
				f, err := ac.Dispatch(ctx, "TEST", 1)
				if err != nil {
					return nil, err
				}
				if _, err := f.Await(ctx); err != nil {
					return nil, err
				}
				return nil, ac.Commit(ctx, "TEST", p)
			}), nil
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	f, err := store.Dispatch(ctx, "two", 3)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := f.Await(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Println(store.State().Get("a"))
	// Output: 5
}
