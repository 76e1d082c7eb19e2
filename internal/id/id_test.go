package id

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderedAndUnique(t *testing.T) {
	const n = 100

	ids := make([]string, n)
	for i := range ids {
		ids[i] = New()
	}

	// Monotonic entropy keeps IDs ordered even within one millisecond.
	assert.True(t, sort.StringsAreSorted(ids), "generation order must match sort order")

	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		require.Len(t, id, 26)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
