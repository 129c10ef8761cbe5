package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the type as written in definitions (e.g. "string", "[int]").
	Name() string
	Validate(value any) error
}

type scalarType struct {
	name  string
	check func(any) bool
}

func (t *scalarType) Name() string { return t.name }

func (t *scalarType) Validate(value any) error {
	if !t.check(value) {
		return fmt.Errorf("expected %s", t.name)
	}
	return nil
}

func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		// whole floats come from JSON payloads
		return n == float64(int64(n))
	}
	return false
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return isInt(v)
}

func isDuration(v any) bool {
	switch d := v.(type) {
	case time.Duration:
		return true
	case string:
		_, err := time.ParseDuration(d)
		return err == nil
	}
	return false
}

// String accepts strings.
func String() Type {
	return &scalarType{name: "string", check: func(v any) bool { _, ok := v.(string); return ok }}
}

// Int accepts every integer kind and whole float64 values.
func Int() Type { return &scalarType{name: "int", check: isInt} }

// Float accepts floats and integers.
func Float() Type { return &scalarType{name: "float", check: isFloat} }

// Bool accepts booleans.
func Bool() Type {
	return &scalarType{name: "bool", check: func(v any) bool { _, ok := v.(bool); return ok }}
}

// Duration accepts time.Duration values and strings time.ParseDuration understands.
func Duration() Type { return &scalarType{name: "duration", check: isDuration} }

// Map accepts map[string]any values.
func Map() Type {
	return &scalarType{name: "map", check: func(v any) bool { _, ok := v.(map[string]any); return ok }}
}

// Any accepts every non-nil value.
func Any() Type { return &scalarType{name: "any", check: func(v any) bool { return v != nil }} }

// SliceType validates slices of a specific element type.
type SliceType struct {
	elem Type
}

// Slice creates a slice type validator for elements of the given type.
func Slice(elem Type) Type {
	return &SliceType{elem: elem}
}

func (t *SliceType) Name() string {
	return "[" + t.elem.Name() + "]"
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected %s", t.Name())
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// OptionalType accepts a missing or nil value, and otherwise defers to its base type.
type OptionalType struct {
	base Type
}

// Optional marks t as not required.
func Optional(t Type) Type {
	return &OptionalType{base: t}
}

func (t *OptionalType) Name() string { return t.base.Name() + "?" }

func (t *OptionalType) Validate(value any) error {
	if value == nil {
		return nil
	}
	return t.base.Validate(value)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

// Custom creates a validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// ParseType converts a type string to a Type: "string", "int", "float",
// "bool", "duration", "map", "any", "[elem]" and any of those followed by "?".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)
	if base, ok := strings.CutSuffix(typeStr, "?"); ok {
		t, err := ParseType(base)
		if err != nil {
			return nil, err
		}
		return Optional(t), nil
	}

	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elem, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "duration":
		return Duration(), nil
	case "map":
		return Map(), nil
	case "any":
		return Any(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %q", typeStr)
	}
}

// ParseTypeMap converts field names to type strings into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
