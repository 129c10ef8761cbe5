package definition

import (
	"fmt"
	"reflect"
)

func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// add sums two numbers, staying integral when both are.
func add(a, b any) (any, error) {
	ai, aok := asInt(a)
	bi, bok := asInt(b)
	if aok && bok {
		return int(ai + bi), nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("add: expected numbers, got %T and %T", a, b)
	}
	return af + bf, nil
}

// appendTo returns a new slice holding the elements of list followed by v.
func appendTo(list, v any) (any, error) {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("append: %T is not a list", list)
	}
	elem := reflect.ValueOf(v)
	if !elem.IsValid() {
		elem = reflect.Zero(rv.Type().Elem())
	}
	if !elem.Type().AssignableTo(rv.Type().Elem()) {
		return nil, fmt.Errorf("append: cannot add %T to %T", v, list)
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len()+1)
	reflect.Copy(out, rv)
	return reflect.Append(out, elem).Interface(), nil
}

func toggle(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("toggle: %T is not a bool", v)
	}
	return !b, nil
}

func length(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	}
	return nil
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() > 0
	}
	if f, ok := asFloat(v); ok {
		return f != 0
	}
	return true
}

// equal compares numbers by value and everything else deeply.
func equal(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// compare returns -1, 0 or 1, and false when either side is not a number.
func compare(a, b any) (int, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func sum(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	var total any = 0
	for i := 0; i < rv.Len(); i++ {
		next, err := add(total, rv.Index(i).Interface())
		if err != nil {
			return nil
		}
		total = next
	}
	return total
}
