package runtime

import "github.com/aretw0/strata/pkg/domain"

// normalize accepts both call styles. An object-style first argument (a
// domain.Typed value, or a map with a "type" key) is itself the payload;
// otherwise the first argument is the type and rest[0] the payload.
func normalize(typ any, rest []any) (any, any) {
	switch v := typ.(type) {
	case domain.Typed:
		return v.Type(), v
	case map[string]any:
		if t, ok := v[domain.TypeKey]; ok {
			return t, v
		}
	}

	var p any
	if len(rest) > 0 {
		p = rest[0]
	}
	return typ, p
}
