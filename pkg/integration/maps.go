package integration

import (
	"cmp"
	"maps"
	"slices"
)

func MapKeys[K comparable, V any](m map[K]V) []K {
	return slices.AppendSeq(make([]K, 0, len(m)), maps.Keys(m))
}

// SortedMapKeys returns the keys of m in ascending order.
func SortedMapKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := MapKeys(m)
	slices.Sort(keys)
	return keys
}
