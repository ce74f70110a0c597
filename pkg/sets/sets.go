// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sets provides small generic helpers for ordered set operations.
package sets

// Union returns the ordered set union of the given groups. Every distinct
// value appears exactly once, ordered by first appearance when scanning the
// groups left to right and the elements within each group left to right.
// The input slices are never modified.
func Union[T comparable](groups ...[]T) []T {
	n := 0
	for _, g := range groups {
		n += len(g)
	}

	seen := make(map[T]struct{}, n)
	union := make([]T, 0, n)
	for _, g := range groups {
		for _, v := range g {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			union = append(union, v)
		}
	}
	return union
}

// Of wraps one or more scalar values into a single group for use with [Union].
func Of[T comparable](vs ...T) []T {
	return vs
}
