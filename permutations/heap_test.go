package permutations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllDistinct(t *testing.T) {
	for n := 0; n <= 6; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		perms := All(items)
		require.Len(t, perms, Count(n), "n=%d", n)

		seen := make(map[string]bool)
		for _, p := range perms {
			require.Len(t, p, n)
			key := fmt.Sprint(p)
			assert.False(t, seen[key], "duplicate %s", key)
			seen[key] = true
		}
	}
}

func TestHeapOrder(t *testing.T) {
	assert.Equal(t, [][]int{
		{1, 2, 3}, {2, 1, 3}, {3, 1, 2}, {1, 3, 2}, {2, 3, 1}, {3, 2, 1},
	}, All([]int{1, 2, 3}))
}

func TestEachStopsEarly(t *testing.T) {
	items := []int64{5, 6, 7, 8}
	calls := 0
	Each(items, func([]int64) bool {
		calls++
		return calls < 3
	})
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int64{5, 6, 7, 8}, items)
}
