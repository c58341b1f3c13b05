// Package mapx provides generic map operations for sparse numeric maps:
// clone, in-place accumulation, zero pruning, open-range deletion and
// sorted-key extraction.
package mapx

import (
	"cmp"
	stdmaps "maps"
	"slices"
)

// Numeric is the constraint for types that support the += operator.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clone returns a shallow copy of m.
// Returns nil for a nil map.
func Clone[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}

	clone := make(map[K]V, len(m))
	stdmaps.Copy(clone, m)

	return clone
}

// Accumulate adds delta to m[key], creating the entry at zero if absent.
func Accumulate[K comparable, V Numeric](m map[K]V, key K, delta V) {
	m[key] += delta
}

// DropZero deletes every entry of m whose value is the zero value.
// Returns the number of deleted entries.
func DropZero[K comparable, V Numeric](m map[K]V) int {
	before := len(m)

	stdmaps.DeleteFunc(m, func(_ K, v V) bool {
		return v == 0
	})

	return before - len(m)
}

// DeleteBetween deletes every key k of m with lo < k < hi.
// Both bounds are exclusive. Returns the number of deleted entries.
func DeleteBetween[K cmp.Ordered, V any](m map[K]V, lo, hi K) int {
	before := len(m)

	stdmaps.DeleteFunc(m, func(k K, _ V) bool {
		return lo < k && k < hi
	})

	return before - len(m)
}

// SortedKeys returns the keys of m in sorted order.
// Returns nil for a nil map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	if m == nil {
		return nil
	}

	keys := make([]K, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
