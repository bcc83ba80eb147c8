package rollup

import "golang.org/x/exp/constraints"

// Group is a set of items sharing a key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy groups items by key. Groups are returned in the order their keys
// were first seen and items keep their relative order within a group.
func GroupBy[K comparable, T any](items []T, keyOf func(T) K) []Group[K, T] {
	var groups []Group[K, T]
	index := make(map[K]int)
	for _, item := range items {
		key := keyOf(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[K, T]{Key: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Sum adds up the value of each item.
func Sum[T any, N constraints.Integer | constraints.Float](items []T, valueOf func(T) N) N {
	var total N
	for _, item := range items {
		total += valueOf(item)
	}
	return total
}
