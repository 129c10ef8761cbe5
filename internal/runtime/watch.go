package runtime

import (
	"context"

	"github.com/aretw0/strata/pkg/reactive"
)

type watcher struct {
	computed *reactive.Computed
	cb       func(ctx context.Context, newV, oldV any)
	last     any
}

// Watch reactively watches fn and calls cb after a commit that changes its
// result. fn is tracked exactly like a getter. cb runs inside the commit scope,
// so it may commit again using the context it receives.
func (s *Store) Watch(fn GetterFunc, cb func(ctx context.Context, newV, oldV any)) func() {
	w := &watcher{cb: cb}
	w.computed = s.graph.NewComputed(func(tr *reactive.Tracker) any {
		return fn(s.state.Tracked(tr), &Getters{r: s.getters, tr: tr})
	})
	w.last = w.computed.Get(nil)

	remove := s.watchers.add(w)
	return func() {
		remove()
		w.computed.Dispose()
	}
}

// runWatchers re-evaluates stale watchers. Caller holds the commit lock.
func (s *Store) runWatchers(ctx context.Context) {
	for _, w := range s.watchers.snapshot() {
		if !w.computed.Dirty() {
			continue
		}
		v := w.computed.Get(nil)
		if reactive.Changed(w.last, v) {
			old := w.last
			w.last = v
			w.cb(ctx, v, old)
		}
	}
}
