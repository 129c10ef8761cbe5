package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/strata/pkg/domain"
)

// Commit runs the named mutation synchronously under the write guard and then
// notifies subscribers. It accepts Commit(ctx, "type", payload) or an
// object-style first argument (see normalize).
func (s *Store) Commit(ctx context.Context, typ any, payload ...any) error {
	t, p := normalize(typ, payload)
	name, err := s.resolve(t)
	if err != nil {
		return err
	}
	handler, ok := s.mutations.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownMutation, name)
	}

	ctx, release := s.enter(ctx)
	defer release()

	start := time.Now()
	err = s.runMutation(ctx, name, handler, p)
	elapsed := time.Since(start)

	if hook := s.hooks.OnCommit; hook != nil {
		hook(ctx, &domain.CommitEvent{
			Timestamp: start,
			Type:      name,
			Payload:   p,
			Duration:  elapsed,
			Err:       err,
		})
	}
	if err != nil {
		s.logger.Debug("commit failed", "type", name, "err", err)
		return fmt.Errorf("mutation %s: %w", name, err)
	}
	s.logger.Debug("commit", "type", name, "duration", elapsed)

	record := domain.MutationRecord{Type: name, Payload: p}
	for _, fn := range s.subs.snapshot() {
		fn(ctx, record, s.state)
	}
	s.runWatchers(ctx)
	return nil
}

// runMutation holds the write guard for the handler's extent, on every exit path.
// The handler gets the only state view the guard accepts while it runs.
func (s *Store) runMutation(ctx context.Context, name string, handler MutationFunc, p any) error {
	tok := &commitToken{mutation: name}
	restore := s.guard.enter(tok)
	defer restore()
	return handler(ctx, s.state.Writable(tok), p)
}
