package runtime

import (
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/reactive"
	"github.com/aretw0/strata/pkg/registry"
	"github.com/aretw0/strata/pkg/state"
)

// GetterFunc derives a value from state and other getters. It must not have
// side effects: memoization assumes the same inputs give the same result.
type GetterFunc func(state *state.Tree, getters *Getters) any

type getter struct {
	name     string
	computed *reactive.Computed
}

type getterRegistry struct {
	store *Store
	reg   *registry.Registry[*getter]
}

func newGetterRegistry(s *Store, opts ...registry.Option) *getterRegistry {
	return &getterRegistry{
		store: s,
		reg:   registry.New[*getter](domain.ErrDuplicateGetter, opts...),
	}
}

// register stores fn as a lazy computation. It returns nil without error when a
// duplicate is dropped because validation is off.
func (r *getterRegistry) register(name string, fn GetterFunc) (*getter, error) {
	g := &getter{name: name}
	g.computed = r.store.graph.NewComputed(func(tr *reactive.Tracker) any {
		start := time.Now()
		v := fn(r.store.state.Tracked(tr), &Getters{r: r, tr: tr})
		if hook := r.store.hooks.OnGetterEvaluate; hook != nil {
			hook(&domain.GetterEvent{
				Timestamp: start,
				Name:      name,
				Duration:  time.Since(start),
			})
		}
		return v
	})

	stored, err := r.reg.Register(name, g)
	if err != nil || !stored {
		return nil, err
	}
	return g, nil
}

// Getters is the read-only getters surface. Values are cached until a state
// leaf they read changes; reading from inside another getter links the two.
type Getters struct {
	r  *getterRegistry
	tr *reactive.Tracker
}

// Lookup returns the current value of the named getter.
func (g *Getters) Lookup(name string) (any, bool) {
	gt, ok := g.r.reg.Lookup(name)
	if !ok {
		return nil, false
	}
	return gt.computed.Get(g.tr), true
}

// Get returns the current value of the named getter, nil if it does not exist.
func (g *Getters) Get(name string) any {
	v, _ := g.Lookup(name)
	return v
}

// Names lists the registered getters in sorted order.
func (g *Getters) Names() []string {
	return g.r.reg.Names()
}

// ToMap evaluates every getter into a plain map.
func (g *Getters) ToMap() map[string]any {
	out := make(map[string]any)
	for _, name := range g.Names() {
		out[name] = g.Get(name)
	}
	return out
}
