package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_DepthOrder(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push(linkcheck.Task{URL: "https://example.com/deep", Depth: 2})
	f.Push(linkcheck.Task{URL: "https://example.com/", Depth: 0})
	f.Push(linkcheck.Task{URL: "https://example.com/mid", Depth: 1})

	task, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/", task.URL)

	task, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/mid", task.URL)

	task, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/deep", task.URL)

	_, ok = f.Pop()
	assert.False(t, ok)
}

func TestFrontier_FIFOWithinDepth(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	for i := 0; i < 10; i++ {
		f.Push(linkcheck.Task{URL: fmt.Sprintf("https://example.com/p%d", i), Depth: 1})
	}

	for i := 0; i < 10; i++ {
		task, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://example.com/p%d", i), task.URL)
	}
}

func TestFrontier_Len(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.Equal(t, 0, f.Len())

	f.Push(linkcheck.Task{URL: "https://example.com/a"})
	f.Push(linkcheck.Task{URL: "https://example.com/b"})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())
}

func TestVisitedSet_Visit(t *testing.T) {
	t.Parallel()

	v := crawl.NewVisitedSet()
	assert.True(t, v.Visit("https://example.com/"))
	assert.False(t, v.Visit("https://example.com/"))
	assert.True(t, v.Visit("https://example.com/other"))
	assert.Equal(t, 2, v.Len())
}

func TestVisitedSet_ConcurrentVisitExactlyOnce(t *testing.T) {
	t.Parallel()

	v := crawl.NewVisitedSet()

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v.Visit("https://example.com/contended") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, v.Len())
}
