package integration

import "strings"

func FilterSlice[T any](inputSlice []T, filterFunc func(T) bool) []T {
	filteredSlice := make([]T, 0, len(inputSlice))
	for _, element := range inputSlice {
		if filterFunc(element) {
			filteredSlice = append(filteredSlice, element)
		}
	}
	return filteredSlice
}

func MapSlice[T, V any](ts []T, fn func(T) V) []V {
	result := make([]V, len(ts))
	for i, t := range ts {
		result[i] = fn(t)
	}
	return result
}

// WithoutPrefix reports whether s does not start with prefix.
// An empty prefix matches nothing, so every s is kept.
func WithoutPrefix[S ~string](prefix string) func(S) bool {
	return func(s S) bool {
		return prefix == "" || !strings.HasPrefix(string(s), prefix)
	}
}
