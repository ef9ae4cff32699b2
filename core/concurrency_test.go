// Package core_test verifies that a finished graph is safe for concurrent readers.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/choreo/core"
)

// TestConcurrentReaders builds once, then queries and caches from many goroutines.
func TestConcurrentReaders(t *testing.T) {
	ix := core.NewIndexed[string]()
	for i := 0; i < 50; i++ {
		_, err := ix.Visit("hub", fmt.Sprintf("N%d", i))
		require.NoError(t, err)
	}

	const num = 64
	var wg sync.WaitGroup
	results := make([]*result, num)
	counts := make([]int, num)
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			results[id] = core.Cached(ix.Graph, "shared", func() *result { return &result{n: id} })
			succ, _ := ix.Adjacency.Successors("hub")
			counts[id] = len(succ)
		}(i)
	}
	wg.Wait()

	for i := 1; i < num; i++ {
		require.Same(t, results[0], results[i], "all readers see one cached value")
		require.Equal(t, 50, counts[i])
	}
}
