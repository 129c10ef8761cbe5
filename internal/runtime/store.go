package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/reactive"
	"github.com/aretw0/strata/pkg/registry"
	"github.com/aretw0/strata/pkg/state"
)

// MutationFunc changes state synchronously. It must not block on other commits.
type MutationFunc func(ctx context.Context, state *state.Tree, payload any) error

// ActionFunc orchestrates commits and dispatches. Returning a *future.Future
// (usually from ActionContext.Async) makes the action asynchronous.
type ActionFunc func(ctx context.Context, ac *ActionContext, payload any) (any, error)

// SubscriberFunc observes every successful commit.
type SubscriberFunc func(ctx context.Context, m domain.MutationRecord, state *state.Tree)

// ActionSubscriberFunc observes every dispatch before its handler runs.
type ActionSubscriberFunc func(ctx context.Context, a domain.ActionRecord, state *state.Tree)

// Named pairs a handler with its registration name. Registration follows slice order.
type Named[T any] struct {
	Name string
	Fn   T
}

// Config describes the contents of a store.
type Config struct {
	State     map[string]any
	Getters   []Named[GetterFunc]
	Mutations []Named[MutationFunc]
	Actions   []Named[ActionFunc]

	// Strict rejects state writes outside mutation handlers.
	Strict bool

	// Validate enables duplicate-name and type checks, and with Strict the write guard.
	// It is the development/test profile switch; production stores turn it off.
	Validate bool
}

// Store is the state container: one state tree, one getter registry, one
// mutation registry, one action registry, one write guard and its subscribers.
type Store struct {
	graph *reactive.Graph
	state *state.Tree
	guard writeGuard

	strict   bool
	validate bool

	getters   *getterRegistry
	mutations *registry.Registry[MutationFunc]
	actions   *registry.Registry[ActionFunc]

	exec       sync.Mutex // serializes commits; see enter
	subs       subscribers[SubscriberFunc]
	actionSubs subscribers[ActionSubscriberFunc]
	watchers   subscribers[*watcher]

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	ids    IDGenerator
}

// StoreOption configures ambient collaborators of a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) StoreOption {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithIDGenerator sets the generator used for dispatch IDs.
func WithIDGenerator(ids IDGenerator) StoreOption {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// NewStore builds the state tree and registers every handler in cfg.
// Getters are evaluated once after all of them are registered.
func NewStore(cfg Config, opts ...StoreOption) (*Store, error) {
	s := &Store{
		strict:   cfg.Strict,
		validate: cfg.Validate,
		logger:   logging.NewNop(),
		ids:      UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	var graphOpts []reactive.GraphOption
	if s.strict && s.validate {
		graphOpts = append(graphOpts, reactive.WithWriteCheck(s.checkWrite))
	}
	s.graph = reactive.NewGraph(graphOpts...)
	s.state = state.Build(s.graph, cfg.State)

	dup := registry.WithDuplicateCheck(s.validate)
	s.mutations = registry.New[MutationFunc](domain.ErrDuplicateMutation, dup)
	s.actions = registry.New[ActionFunc](domain.ErrDuplicateAction, dup)
	s.getters = newGetterRegistry(s, dup)

	for _, m := range cfg.Mutations {
		if _, err := s.mutations.Register(m.Name, m.Fn); err != nil {
			return nil, err
		}
	}
	for _, a := range cfg.Actions {
		if _, err := s.actions.Register(a.Name, a.Fn); err != nil {
			return nil, err
		}
	}

	var pending []*getter
	for _, g := range cfg.Getters {
		gt, err := s.getters.register(g.Name, g.Fn)
		if err != nil {
			return nil, err
		}
		if gt != nil {
			pending = append(pending, gt)
		}
	}
	if err := evaluate(pending); err != nil {
		return nil, err
	}

	s.logger.Debug("store created",
		"getters", s.getters.reg.Len(),
		"mutations", s.mutations.Len(),
		"actions", s.actions.Len(),
		"strict", s.strict,
		"validate", s.validate,
	)
	return s, nil
}

// evaluate computes every getter once, reporting a dependency cycle as an error.
func evaluate(pending []*getter) (err error) {
	var current string
	defer func() {
		if r := recover(); r != nil {
			if r != reactive.ErrCycle {
				panic(r)
			}
			err = fmt.Errorf("%w: %s", domain.ErrGetterCycle, current)
		}
	}()
	for _, gt := range pending {
		current = gt.name
		gt.computed.Get(nil)
	}
	return nil
}

// State returns the live state tree. In strict mode writes through it always fail;
// mutation handlers write through the view they receive.
func (s *Store) State() *state.Tree {
	return s.state
}

// Getters returns the live, memoized getters view.
func (s *Store) Getters() *Getters {
	return &Getters{r: s.getters}
}

// Subscribe registers fn for every subsequent commit. The returned function
// removes exactly this registration and may be called any number of times.
func (s *Store) Subscribe(fn SubscriberFunc) func() {
	return s.subs.add(fn)
}

// SubscribeAction registers fn for every subsequent dispatch.
func (s *Store) SubscribeAction(fn ActionSubscriberFunc) func() {
	return s.actionSubs.add(fn)
}

// checkWrite is the graph write check: writes pass only through the state
// view of the mutation handler that is running right now.
func (s *Store) checkWrite(token any) error {
	if !s.guard.allows(token) {
		return domain.ErrStateMutationOutsideCommit
	}
	return nil
}

// resolve turns a normalized type into a handler name. With validation off a
// non-string type is stringified so the lookup reports it as unknown.
func (s *Store) resolve(typ any) (string, error) {
	if name, ok := typ.(string); ok {
		return name, nil
	}
	if s.validate {
		return "", domain.NewTypeError(typ)
	}
	return fmt.Sprint(typ), nil
}
