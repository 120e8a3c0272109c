package textutil

// DeepTransform walks a nested value tree and returns a copy in which every
// leaf has been replaced by fn(leaf). Maps and slices are rebuilt, never
// modified in place.
func DeepTransform(obj map[string]any, fn func(any) any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = transformValue(value, fn)
	}
	return out
}

func transformValue(value any, fn func(any) any) any {
	switch typed := value.(type) {
	case map[string]any:
		return DeepTransform(typed, fn)
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = transformValue(item, fn)
		}
		return items
	default:
		return fn(value)
	}
}
