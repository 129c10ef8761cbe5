package domain

import (
	"context"
	"time"
)

// CommitEvent is emitted after a mutation handler returns.
type CommitEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      string        `json:"type"`
	Payload   any           `json:"payload,omitempty"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// DispatchEvent is emitted when an action has been invoked and its result normalized.
type DispatchEvent struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Async     bool      `json:"async"` // the handler returned a pending future
	Err       error     `json:"-"`     // synchronous handler error
}

// GetterEvent is emitted every time a getter function actually runs.
type GetterEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Name      string        `json:"name"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for store observability.
// Hooks run synchronously on the goroutine performing the operation.
type LifecycleHooks struct {
	OnCommit         func(context.Context, *CommitEvent)
	OnDispatch       func(context.Context, *DispatchEvent)
	OnGetterEvaluate func(*GetterEvent)
}

// ComposeHooks returns hooks that call each of hooks in order.
func ComposeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		if h.OnCommit != nil {
			prev, next := out.OnCommit, h.OnCommit
			out.OnCommit = func(ctx context.Context, e *CommitEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnDispatch != nil {
			prev, next := out.OnDispatch, h.OnDispatch
			out.OnDispatch = func(ctx context.Context, e *DispatchEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnGetterEvaluate != nil {
			prev, next := out.OnGetterEvaluate, h.OnGetterEvaluate
			out.OnGetterEvaluate = func(e *GetterEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
	}
	return out
}
