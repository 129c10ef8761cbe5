// Package payload decodes commit and dispatch payloads into typed values.
package payload

import (
	"fmt"
	"reflect"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Decode copies p into target, a non-nil pointer.
//
// Map payloads (the object style, type key included) are decoded field by field
// with weak typing, so {"type": "add", "amount": 2} fills a struct with an
// Amount field. A payload already assignable to *target is stored directly.
func Decode(p any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode payload: target must be a non-nil pointer, got %T", target)
	}

	if p != nil {
		pv := reflect.ValueOf(p)
		if pv.Type().AssignableTo(rv.Elem().Type()) {
			rv.Elem().Set(pv)
			return nil
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "payload",
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := dec.Decode(p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Field returns the value under key when p is a map payload, or p itself otherwise.
// It lets handlers accept both Commit(ctx, "add", 2) and
// Commit(ctx, map[string]any{"type": "add", "amount": 2}).
func Field(p any, key string) any {
	if m, ok := p.(map[string]any); ok {
		return m[key]
	}
	return p
}

// Strip returns a copy of a map payload without its type key. Other payloads are returned unchanged.
func Strip(p any) any {
	m, ok := p.(map[string]any)
	if !ok {
		return p
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == domain.TypeKey {
			continue
		}
		out[k] = v
	}
	return out
}
