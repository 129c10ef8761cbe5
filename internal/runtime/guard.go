package runtime

import "sync/atomic"

// commitToken identifies one running mutation handler. Only the state view
// handed to that handler carries it.
type commitToken struct {
	mutation string
}

// writeGuard holds the token of the mutation handler currently running, if any.
type writeGuard struct {
	current atomic.Pointer[commitToken]
}

// enter makes tok the active token and returns the function restoring the
// previous one. A nested commit therefore hands the guard back to the outer handler.
func (g *writeGuard) enter(tok *commitToken) (restore func()) {
	prev := g.current.Swap(tok)
	return func() {
		g.current.Store(prev)
	}
}

func (g *writeGuard) active() bool {
	return g.current.Load() != nil
}

// allows reports whether token belongs to the running handler.
func (g *writeGuard) allows(token any) bool {
	tok, ok := token.(*commitToken)
	return ok && tok != nil && g.current.Load() == tok
}
