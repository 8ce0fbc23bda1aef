package metrics

import "sort"

// SortStableDesc orders items descending by key, preserving insertion
// order on ties so engine output is stable under input permutation.
func SortStableDesc[T any](items []T, key func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) > key(items[j])
	})
}

func sortStableDesc[T any](items []T, key func(T) float64) {
	SortStableDesc(items, key)
}
