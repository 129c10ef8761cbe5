package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/future"
	"github.com/aretw0/strata/pkg/state"
)

// ActionContext is what an action handler sees of its store.
type ActionContext struct {
	store *Store

	State   *state.Tree
	Getters *Getters
}

// Commit commits a mutation on the owning store.
func (ac *ActionContext) Commit(ctx context.Context, typ any, payload ...any) error {
	return ac.store.Commit(ctx, typ, payload...)
}

// Dispatch dispatches an action on the owning store.
func (ac *ActionContext) Dispatch(ctx context.Context, typ any, payload ...any) (*future.Future, error) {
	return ac.store.Dispatch(ctx, typ, payload...)
}

// Async runs fn on a new goroutine with a detached context and returns its future.
// Returning that future from the handler makes the action asynchronous.
func (ac *ActionContext) Async(ctx context.Context, fn func(ctx context.Context) (any, error)) *future.Future {
	return future.Go(Detach(ctx), fn)
}

// Dispatch runs the named action and returns its result as a future. Unknown
// names and invalid types fail synchronously; errors returned by the handler
// reject the future instead.
func (s *Store) Dispatch(ctx context.Context, typ any, payload ...any) (*future.Future, error) {
	t, p := normalize(typ, payload)
	name, err := s.resolve(t)
	if err != nil {
		return nil, err
	}
	handler, ok := s.actions.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, name)
	}

	id := s.ids.Generate()
	record := domain.ActionRecord{ID: id, Type: name, Payload: p}
	for _, fn := range s.actionSubs.snapshot() {
		fn(ctx, record, s.state)
	}

	start := time.Now()
	v, herr := handler(ctx, s.actionContext(), p)
	f := settle(v, herr)

	if hook := s.hooks.OnDispatch; hook != nil {
		hook(ctx, &domain.DispatchEvent{
			Timestamp: start,
			ID:        id,
			Type:      name,
			Payload:   p,
			Async:     !f.Settled(),
			Err:       herr,
		})
	}
	s.logger.Debug("dispatch", "type", name, "dispatch_id", id, "err", herr)
	return f, nil
}

func (s *Store) actionContext() *ActionContext {
	return &ActionContext{
		store:   s,
		State:   s.state,
		Getters: s.Getters(),
	}
}

// settle normalizes a handler result: futures pass through, errors reject,
// anything else resolves immediately.
func settle(v any, err error) *future.Future {
	if err != nil {
		return future.Rejected(err)
	}
	if f, ok := v.(*future.Future); ok && f != nil {
		return f
	}
	return future.Resolved(v)
}
