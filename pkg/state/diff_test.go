package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  map[string]any
		new  map[string]any
		want map[string]any
	}{
		{
			name: "no changes",
			old:  map[string]any{"a": 1, "u": map[string]any{"n": "x"}},
			new:  map[string]any{"a": 1, "u": map[string]any{"n": "x"}},
			want: nil,
		},
		{
			name: "nested leaf",
			old:  map[string]any{"a": 1, "u": map[string]any{"n": "x", "age": 3}},
			new:  map[string]any{"a": 1, "u": map[string]any{"n": "y", "age": 3}},
			want: map[string]any{"u.n": "y"},
		},
		{
			name: "lists compare deeply",
			old:  map[string]any{"l": []any{1}},
			new:  map[string]any{"l": []any{1, 2}},
			want: map[string]any{"l": []any{1, 2}},
		},
		{
			name: "added and removed",
			old:  map[string]any{"gone": true},
			new:  map[string]any{"new": 1},
			want: map[string]any{"gone": nil, "new": 1},
		},
		{
			name: "initial snapshot",
			old:  nil,
			new:  map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.old, tt.new))
		})
	}
}
