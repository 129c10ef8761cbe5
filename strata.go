package strata

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/aretw0/strata/internal/runtime"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/future"
	"github.com/aretw0/strata/pkg/state"
)

// Version of the strata library.
const Version = "0.4.0"

type (
	// State is the live view of the store's state tree.
	State = state.Tree
	// Getters is the live, memoized getters view.
	Getters = runtime.Getters
	// ActionContext is what an action handler sees of its store.
	ActionContext = runtime.ActionContext
	// Future is the awaitable returned by Dispatch.
	Future = future.Future

	GetterFunc           = runtime.GetterFunc
	MutationFunc         = runtime.MutationFunc
	ActionFunc           = runtime.ActionFunc
	SubscriberFunc       = runtime.SubscriberFunc
	ActionSubscriberFunc = runtime.ActionSubscriberFunc
	WatchFunc            = func(ctx context.Context, newV, oldV any)

	MutationRecord = domain.MutationRecord
	ActionRecord   = domain.ActionRecord
	IDGenerator    = runtime.IDGenerator
)

// Store is the high-level entry point: one state tree with its getters,
// mutations, actions and subscribers.
type Store struct {
	runtime *runtime.Store

	cfg     runtime.Config
	hooks   []domain.LifecycleHooks
	logger  *slog.Logger
	ids     IDGenerator
	plugins []func(*Store)
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithState sets the initial state. Nested map[string]any values become
// nested state trees, every other value is a leaf.
func WithState(initial map[string]any) Option {
	return func(s *Store) {
		s.cfg.State = initial
	}
}

// WithGetter registers a getter. Getters may read other getters.
func WithGetter(name string, fn GetterFunc) Option {
	return func(s *Store) {
		s.cfg.Getters = append(s.cfg.Getters, runtime.Named[GetterFunc]{Name: name, Fn: fn})
	}
}

// WithGetters registers getters in sorted name order.
func WithGetters(getters map[string]GetterFunc) Option {
	return func(s *Store) {
		for _, name := range sortedKeys(getters) {
			WithGetter(name, getters[name])(s)
		}
	}
}

// WithMutation registers a mutation handler.
func WithMutation(name string, fn MutationFunc) Option {
	return func(s *Store) {
		s.cfg.Mutations = append(s.cfg.Mutations, runtime.Named[MutationFunc]{Name: name, Fn: fn})
	}
}

// WithMutations registers mutation handlers in sorted name order.
func WithMutations(mutations map[string]MutationFunc) Option {
	return func(s *Store) {
		for _, name := range sortedKeys(mutations) {
			WithMutation(name, mutations[name])(s)
		}
	}
}

// WithAction registers an action handler.
func WithAction(name string, fn ActionFunc) Option {
	return func(s *Store) {
		s.cfg.Actions = append(s.cfg.Actions, runtime.Named[ActionFunc]{Name: name, Fn: fn})
	}
}

// WithActions registers action handlers in sorted name order.
func WithActions(actions map[string]ActionFunc) Option {
	return func(s *Store) {
		for _, name := range sortedKeys(actions) {
			WithAction(name, actions[name])(s)
		}
	}
}

// WithStrict controls whether state writes outside mutation handlers fail
// (default: true). Only enforced while validation is on.
func WithStrict(strict bool) Option {
	return func(s *Store) {
		s.cfg.Strict = strict
	}
}

// WithValidation enables duplicate-name checks, type checks and the strict
// write guard (default: true). Production builds usually turn it off.
func WithValidation(validate bool) Option {
	return func(s *Store) {
		s.cfg.Validate = validate
	}
}

// WithLogger sets a custom structured logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls compose.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = append(s.hooks, hooks)
	}
}

// WithIDGenerator sets the generator for dispatch IDs (default: UUIDv7).
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithPlugin runs fn once the store is fully built, typically to subscribe.
func WithPlugin(fn func(*Store)) Option {
	return func(s *Store) {
		s.plugins = append(s.plugins, fn)
	}
}

// New initializes a Store. Registration errors (duplicate names while
// validation is on) are returned here.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		cfg: runtime.Config{Strict: true, Validate: true},
	}
	for _, opt := range opts {
		opt(s)
	}

	runtimeOpts := []runtime.StoreOption{
		runtime.WithLogger(s.logger),
		runtime.WithIDGenerator(s.ids),
		runtime.WithLifecycleHooks(domain.ComposeHooks(s.hooks...)),
	}
	rt, err := runtime.NewStore(s.cfg, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	s.runtime = rt

	for _, plugin := range s.plugins {
		plugin(s)
	}
	return s, nil
}

// Commit runs a mutation synchronously:
//
//	store.Commit(ctx, "increment", 2)
//	store.Commit(ctx, map[string]any{"type": "increment", "amount": 2})
//
// Commits from inside a mutation, subscriber or watcher must pass on the
// context they were given.
func (s *Store) Commit(ctx context.Context, typ any, payload ...any) error {
	return s.runtime.Commit(ctx, typ, payload...)
}

// Dispatch runs an action and always returns a future for its result.
// Unknown actions and invalid types fail immediately with an error.
func (s *Store) Dispatch(ctx context.Context, typ any, payload ...any) (*Future, error) {
	return s.runtime.Dispatch(ctx, typ, payload...)
}

// Subscribe calls fn after every successful commit and returns its unsubscribe function.
func (s *Store) Subscribe(fn SubscriberFunc) func() {
	return s.runtime.Subscribe(fn)
}

// SubscribeAction calls fn before every dispatched action runs.
func (s *Store) SubscribeAction(fn ActionSubscriberFunc) func() {
	return s.runtime.SubscribeAction(fn)
}

// Watch calls cb after each commit that changes the result of fn.
func (s *Store) Watch(fn GetterFunc, cb WatchFunc) func() {
	return s.runtime.Watch(fn, cb)
}

// State returns the live state view.
func (s *Store) State() *State {
	return s.runtime.State()
}

// Getters returns the live getters view.
func (s *Store) Getters() *Getters {
	return s.runtime.Getters()
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
