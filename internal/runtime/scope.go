package runtime

import "context"

type scopeKey struct{}

// scope marks the commit lock of one store as held by the current call chain.
type scope struct {
	store  *Store
	parent *scope
}

// enter acquires the store's commit lock unless ctx already carries it, which
// is the case for commits issued from inside a mutation handler or subscriber.
func (s *Store) enter(ctx context.Context) (context.Context, func()) {
	parent, _ := ctx.Value(scopeKey{}).(*scope)
	for sc := parent; sc != nil; sc = sc.parent {
		if sc.store == s {
			return ctx, func() {}
		}
	}

	s.exec.Lock()
	return context.WithValue(ctx, scopeKey{}, &scope{store: s, parent: parent}), s.exec.Unlock
}

// Detach returns ctx without any held commit scope. Work handed to another
// goroutine must use a detached context so its commits wait for the lock.
func Detach(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, (*scope)(nil))
}
