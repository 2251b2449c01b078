// Package permutations enumerates orderings of a small set with Heap's
// algorithm, one swap between consecutive permutations.
package permutations

import "golang.org/x/exp/slices"

// Each calls fn with every permutation of items. The slice passed to fn is
// reused between calls; fn must copy it to retain it. Returning false stops
// the enumeration. items is not modified.
func Each[T any](items []T, fn func(perm []T) bool) {
	a := slices.Clone(items)
	n := len(a)
	if !fn(a) {
		return
	}
	c := make([]int, n)
	for i := 1; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if !fn(a) {
				return
			}
			c[i]++
			i = 1
			continue
		}
		c[i] = 0
		i++
	}
}

// All returns every permutation of items as independent slices.
func All[T any](items []T) [][]T {
	var out [][]T
	Each(items, func(perm []T) bool {
		out = append(out, slices.Clone(perm))
		return true
	})
	return out
}

// Count is n! for the sizes Each can reasonably enumerate.
func Count(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
