package definition

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/payload"
	"github.com/aretw0/strata/pkg/schema"
)

// Options translates the definition into store options.
func (d *Definition) Options() ([]strata.Option, error) {
	strict := true
	if d.Strict != nil {
		strict = *d.Strict
	}
	opts := []strata.Option{
		strata.WithState(d.State),
		strata.WithStrict(strict),
		strata.WithValidation(d.Profile != ProfileProduction),
	}

	mutations := make(map[string]strata.MutationFunc, len(d.Mutations))
	for name, m := range d.Mutations {
		fn, err := m.handler()
		if err != nil {
			return nil, fmt.Errorf("mutation %s: %w", name, err)
		}
		mutations[name] = fn
	}

	getters := make(map[string]strata.GetterFunc, len(d.Getters))
	for name, g := range d.Getters {
		getters[name] = g.fn()
	}

	actions := make(map[string]strata.ActionFunc, len(d.Actions))
	for name, a := range d.Actions {
		fn, err := a.handler()
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", name, err)
		}
		actions[name] = fn
	}

	return append(opts,
		strata.WithMutations(mutations),
		strata.WithGetters(getters),
		strata.WithActions(actions),
	), nil
}

// Build creates the store. extra options are applied after the definition's own.
func (d *Definition) Build(extra ...strata.Option) (*strata.Store, error) {
	opts, err := d.Options()
	if err != nil {
		return nil, err
	}
	return strata.New(append(opts, extra...)...)
}

// operand picks what a mutation writes: the constant value, a payload field, or the payload.
func (m Mutation) operand(p any) any {
	switch {
	case m.Value != nil:
		return m.Value
	case m.From != "":
		return payload.Field(p, m.From)
	default:
		return payload.Strip(p)
	}
}

func (m Mutation) handler() (strata.MutationFunc, error) {
	fields, scalar, err := parseAccepts(m.Accepts)
	if err != nil {
		return nil, err
	}
	path := splitPath(m.Field)

	return func(ctx context.Context, s *strata.State, p any) error {
		if err := schema.ValidatePayload(fields, scalar, p); err != nil {
			return err
		}
		arg := m.operand(p)
		if m.Op == OpSet {
			return s.SetAt(path, arg)
		}

		old, _ := s.At(path...)
		var (
			next any
			err  error
		)
		switch m.Op {
		case OpAdd:
			next, err = add(old, arg)
		case OpAppend:
			next, err = appendTo(old, arg)
		case OpToggle:
			next, err = toggle(old)
		default:
			err = fmt.Errorf("unknown op %q", m.Op)
		}
		if err != nil {
			return err
		}
		return s.SetAt(path, next)
	}, nil
}

// fn returns the getter function. Operands of the wrong kind yield nil.
func (g Getter) fn() strata.GetterFunc {
	var path []string
	if g.Field != "" {
		path = splitPath(g.Field)
	}

	return func(s *strata.State, getters *strata.Getters) any {
		var v any
		if g.Getter != "" {
			v = getters.Get(g.Getter)
		} else {
			v, _ = s.At(path...)
		}

		switch g.Op {
		case OpLen:
			return length(v)
		case OpNot:
			return !truthy(v)
		case OpEq:
			return equal(v, g.Value)
		case OpGt:
			c, ok := compare(v, g.Value)
			return ok && c > 0
		case OpLt:
			c, ok := compare(v, g.Value)
			return ok && c < 0
		case OpSum:
			return sum(v)
		default:
			return v
		}
	}
}

func (a Action) handler() (strata.ActionFunc, error) {
	fields, scalar, err := parseAccepts(a.Accepts)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, ac *strata.ActionContext, p any) (any, error) {
		if err := schema.ValidatePayload(fields, scalar, p); err != nil {
			return nil, err
		}
		if a.Async() {
			return ac.Async(ctx, func(ctx context.Context) (any, error) {
				return nil, a.run(ctx, ac, p)
			}), nil
		}
		return nil, a.run(ctx, ac, p)
	}, nil
}

func (a Action) run(ctx context.Context, ac *strata.ActionContext, p any) error {
	for i, step := range a.Steps {
		if step.Delay > 0 {
			timer := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		arg := p
		if step.Payload != nil {
			arg = step.Payload
		}

		if step.Commit != "" {
			if err := ac.Commit(ctx, step.Commit, arg); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			continue
		}
		f, err := ac.Dispatch(ctx, step.Dispatch, arg)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, err := f.Await(ctx); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
