package state

import (
	"reflect"
	"strings"
)

// Diff compares two plain snapshots (as returned by ToMap) and returns the
// changed leaves keyed by dotted path. Removed paths map to nil.
// It returns nil when nothing changed.
func Diff(old, new map[string]any) map[string]any {
	delta := make(map[string]any)
	diffInto(delta, nil, old, new)
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffInto(delta map[string]any, prefix []string, old, new map[string]any) {
	for k, newVal := range new {
		path := append(prefix[:len(prefix):len(prefix)], k)
		oldVal, exists := old[k]

		newSub, newIsTree := newVal.(map[string]any)
		oldSub, oldIsTree := oldVal.(map[string]any)
		if exists && newIsTree && oldIsTree {
			diffInto(delta, path, oldSub, newSub)
			continue
		}
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[strings.Join(path, ".")] = newVal
		}
	}

	for k := range old {
		if _, exists := new[k]; !exists {
			delta[strings.Join(append(prefix[:len(prefix):len(prefix)], k), ".")] = nil
		}
	}
}
