package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFO_AddGet(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int, string](4)
	c.Add(1, "one")

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestFIFO_EvictsOldestFirst(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int, int](3)
	for k := 1; k <= 3; k++ {
		c.Add(k, k*10)
	}

	// Reading key 1 must not protect it: eviction is insertion-ordered.
	_, _ = c.Get(1)
	c.Add(4, 40)

	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should be evicted")
	for k := 2; k <= 4; k++ {
		_, ok := c.Get(k)
		assert.True(t, ok, "key %d should survive", k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestFIFO_ReAddDoesNotReorder(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int, int](2)
	c.Add(1, 10)
	c.Add(2, 20)
	c.Add(1, 99) // no-op: key 1 keeps its slot and value
	c.Add(3, 30)

	_, ok := c.Get(1)
	assert.False(t, ok, "key 1 is still the oldest and should be evicted")
	v, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestFIFO_GetOrCompute(t *testing.T) {
	t.Parallel()

	c := NewFIFO[string, int](4)
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrCompute("a", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrCompute("a", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls, "second access should hit the cache")
}

func TestFIFO_GetOrComputeErrorNotCached(t *testing.T) {
	t.Parallel()

	c := NewFIFO[string, int](4)
	boom := errors.New("boom")

	_, err := c.GetOrCompute("a", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("a", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFIFO_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := i % 100
				v, err := c.GetOrCompute(key, func() (int, error) { return key * 2, nil })
				assert.NoError(t, err)
				assert.Equal(t, key*2, v)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}

func TestNewFIFO_InvalidCapacityPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewFIFO[int, int](0) })
}
