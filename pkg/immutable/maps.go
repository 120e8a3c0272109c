package immutable

// With returns a copy of m with key set to value.
func With[K comparable, V any](m map[K]V, key K, value V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

// Without returns a copy of m with key removed.
func Without[K comparable, V any](m map[K]V, key K) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		if k == key {
			continue
		}
		out[k] = v
	}
	return out
}
