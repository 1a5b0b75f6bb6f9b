package utils

import (
	"cmp"
	"slices"
)

func GetSortedKeys[K cmp.Ordered, V any](m map[K]V, asc bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b K) int {
		if asc {
			return cmp.Compare(a, b)
		}
		return cmp.Compare(b, a)
	})
	return keys
}
