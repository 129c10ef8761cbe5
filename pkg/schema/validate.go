package schema

import (
	"maps"
	"slices"

	"github.com/aretw0/strata/pkg/domain"
)

// Schema maps payload field names to their expected types.
type Schema map[string]Type

// Validate checks data against the schema and reports every failure.
// The type key of object-style payloads is never validated.
func Validate(schema Schema, data map[string]any) error {
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(schema)) {
		if key == domain.TypeKey {
			continue
		}
		typ := schema[key]
		value, exists := data[key]
		if !exists {
			if _, optional := typ.(*OptionalType); optional {
				continue
			}
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidatePayload checks a commit or dispatch payload. Map payloads are checked
// against fields; any other payload against scalar. Either may be nil to skip.
func ValidatePayload(fields Schema, scalar Type, payload any) error {
	if m, ok := payload.(map[string]any); ok && fields != nil {
		return Validate(fields, m)
	}
	if scalar != nil {
		if err := scalar.Validate(payload); err != nil {
			return &AggregateError{Errors: []error{&ValidationError{Reason: err.Error(), Value: payload}}}
		}
		return nil
	}
	if len(fields) > 0 {
		return &AggregateError{Errors: []error{&ValidationError{Reason: "expected an object payload", Value: payload}}}
	}
	return nil
}
