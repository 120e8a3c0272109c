// Package immutable provides copy-on-write helpers for slices and maps. Every
// function returns a fresh value and leaves its inputs untouched, so a
// snapshot handed to one reader can never change underneath it.
package immutable

// Push returns a new slice holding s followed by items.
func Push[T any](s []T, items ...T) []T {
	out := make([]T, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}
