package modelsafe

import "github.com/sorakthunly/modelsafe/pkg/schema"

// mergeInto deep-merges src onto dst. Matching keys whose values are both
// plain maps merge recursively; otherwise the incoming value replaces the
// existing one. Incoming container values are cloned so an instance never
// aliases caller-owned data.
func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		if sub, ok := value.(map[string]any); ok {
			if have, ok := dst[key].(map[string]any); ok {
				mergeInto(have, sub)
				continue
			}
			dst[key] = cloneMap(sub)
			continue
		}
		dst[key] = cloneValue(value)
	}
}

// cloneMap returns a deep copy of a plain map.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies plain container values. Scalars, time values, and
// model instances are shared as-is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// resolveDefault produces the concrete runtime value for a declared default.
// Lazy defaults are invoked fresh on every call; concrete container defaults
// are cloned so instances never share a mutable default object.
func resolveDefault(d any) any {
	if f, ok := d.(schema.LazyDefault); ok {
		return f()
	}
	return cloneValue(d)
}
