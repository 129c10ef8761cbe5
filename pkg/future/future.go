// Package future provides the awaitable returned by Dispatch.
package future

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Future is the eventual result of an action. It settles exactly once.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

// New returns a pending future and the function that settles it.
// Only the first call to settle has any effect.
func New() (*Future, func(value any, err error)) {
	f := &Future{done: make(chan struct{})}
	return f, f.settle
}

// Resolved returns a future already settled with v.
func Resolved(v any) *Future {
	f, settle := New()
	settle(v, nil)
	return f
}

// Rejected returns a future already settled with err.
func Rejected(err error) *Future {
	f, settle := New()
	settle(nil, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
func Go(ctx context.Context, fn func(ctx context.Context) (any, error)) *Future {
	f, settle := New()
	go func() {
		settle(fn(ctx))
	}()
	return f
}

func (f *Future) settle(value any, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}

// Done is closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the result is available without blocking.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the future settles or ctx is done.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// All awaits every future and returns their values in order.
// The first error cancels the wait for the rest and is returned.
func All(ctx context.Context, fs ...*Future) ([]any, error) {
	values := make([]any, len(fs))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fs {
		g.Go(func() error {
			v, err := f.Await(gctx)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}
