package definition

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/strata/pkg/schema"
)

// Mutation ops.
const (
	OpSet    = "set"
	OpAdd    = "add"
	OpAppend = "append"
	OpToggle = "toggle"
)

// Getter ops.
const (
	OpGet    = "get"
	OpGetter = "getter"
	OpLen    = "len"
	OpNot    = "not"
	OpEq     = "eq"
	OpGt     = "gt"
	OpLt     = "lt"
	OpSum    = "sum"
)

var (
	mutationOps = []string{OpSet, OpAdd, OpAppend, OpToggle}
	getterOps   = []string{OpGet, OpGetter, OpLen, OpNot, OpEq, OpGt, OpLt, OpSum}
)

// Validate checks ops, state paths and cross references. Every problem is
// reported; the result matches ErrInvalidDefinition.
func (d *Definition) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch d.Profile {
	case "", ProfileDevelopment, ProfileProduction:
	default:
		fail("profile: unknown profile %q", d.Profile)
	}

	for _, name := range slices.Sorted(maps.Keys(d.Mutations)) {
		m := d.Mutations[name]
		if !slices.Contains(mutationOps, m.Op) {
			fail("mutation %s: unknown op %q", name, m.Op)
		}
		if err := d.checkLeaf(m.Field); err != nil {
			fail("mutation %s: %w", name, err)
		}
		if _, _, err := parseAccepts(m.Accepts); err != nil {
			fail("mutation %s: %w", name, err)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(d.Getters)) {
		g := d.Getters[name]
		if !slices.Contains(getterOps, g.Op) {
			fail("getter %s: unknown op %q", name, g.Op)
		}
		switch {
		case g.Getter != "" && g.Field != "":
			fail("getter %s: field and getter are mutually exclusive", name)
		case g.Getter != "":
			if _, ok := d.Getters[g.Getter]; !ok {
				fail("getter %s: unknown getter %q", name, g.Getter)
			}
		case g.Op == OpGetter:
			fail("getter %s: op getter needs a getter", name)
		default:
			if _, err := d.lookup(g.Field); err != nil {
				fail("getter %s: %w", name, err)
			}
		}
	}
	if cycle := d.getterCycle(); cycle != nil {
		fail("getters: cycle %s", strings.Join(cycle, " -> "))
	}

	for _, name := range slices.Sorted(maps.Keys(d.Actions)) {
		a := d.Actions[name]
		if len(a.Steps) == 0 {
			fail("action %s: no steps", name)
		}
		for i, s := range a.Steps {
			switch {
			case (s.Commit == "") == (s.Dispatch == ""):
				fail("action %s step %d: exactly one of commit or dispatch", name, i+1)
			case s.Commit != "":
				if _, ok := d.Mutations[s.Commit]; !ok {
					fail("action %s step %d: unknown mutation %q", name, i+1, s.Commit)
				}
			default:
				if _, ok := d.Actions[s.Dispatch]; !ok {
					fail("action %s step %d: unknown action %q", name, i+1, s.Dispatch)
				}
			}
			if s.Delay < 0 {
				fail("action %s step %d: negative delay", name, i+1)
			}
		}
		if _, _, err := parseAccepts(a.Accepts); err != nil {
			fail("action %s: %w", name, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
	}
	return nil
}

func splitPath(field string) []string {
	return strings.Split(field, ".")
}

// lookup walks a dotted path through the initial state.
func (d *Definition) lookup(field string) (any, error) {
	if field == "" {
		return nil, errors.New("missing field")
	}
	var cur any = d.State
	for _, key := range splitPath(field) {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("state path %q: %q is inside a leaf", field, key)
		}
		if cur, ok = m[key]; !ok {
			return nil, fmt.Errorf("state path %q: unknown key %q", field, key)
		}
	}
	return cur, nil
}

func (d *Definition) checkLeaf(field string) error {
	v, err := d.lookup(field)
	if err != nil {
		return err
	}
	if _, ok := v.(map[string]any); ok {
		return fmt.Errorf("state path %q is not a leaf", field)
	}
	return nil
}

// getterCycle returns one getter reference cycle, or nil.
func (d *Definition) getterCycle() []string {
	const (
		visiting = 1
		done     = 2
	)
	marks := make(map[string]int)
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		switch marks[name] {
		case visiting:
			start := slices.Index(stack, name)
			return append(slices.Clone(stack[start:]), name)
		case done:
			return nil
		}
		marks[name] = visiting
		stack = append(stack, name)
		if next := d.Getters[name].Getter; next != "" {
			if _, ok := d.Getters[next]; ok {
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		marks[name] = done
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(d.Getters)) {
		if cycle := visit(name); cycle != nil {
			return cycle
		}
	}
	return nil
}

// parseAccepts reads an accepts entry: a type string or a field mapping.
func parseAccepts(v any) (schema.Schema, schema.Type, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil, nil
	case string:
		t, err := schema.ParseType(a)
		if err != nil {
			return nil, nil, fmt.Errorf("accepts: %w", err)
		}
		return nil, t, nil
	case map[string]any:
		raw := make(map[string]string, len(a))
		for key, typ := range a {
			s, ok := typ.(string)
			if !ok {
				return nil, nil, fmt.Errorf("accepts: field %s: expected a type string, got %T", key, typ)
			}
			raw[key] = s
		}
		fields, err := schema.ParseTypeMap(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("accepts: %w", err)
		}
		return fields, nil, nil
	default:
		return nil, nil, fmt.Errorf("accepts: expected a type string or mapping, got %T", v)
	}
}
