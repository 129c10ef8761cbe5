package reactive

import "reflect"

// Changed reports whether writing b over a counts as a change.
//
// Comparable values use plain inequality, so two NaNs are always different.
// Slices are the same only when they share backing array, length and capacity;
// maps compare by identity. Functions and values that cannot be compared
// always count as changed.
func Changed(a, b any) bool {
	if a == nil || b == nil {
		return a != nil || b != nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return true
	}
	if va.Comparable() && vb.Comparable() {
		return a != b
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() != vb.Pointer() || va.Len() != vb.Len() || va.Cap() != vb.Cap()
	case reflect.Map:
		return va.Pointer() != vb.Pointer()
	default:
		return true
	}
}
