package bimultimap

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMap(t *testing.T) *BiMultiMap[int, string] {
	t.Helper()
	m := New[int, string]()
	for k := 1; k <= 3; k++ {
		_, err := m.PutAll(k, "shared", string(rune('a'+k)))
		require.NoError(t, err)
	}
	return m
}

func TestKeySet(t *testing.T) {
	t.Run("RemoveDropsWholeSlot", func(t *testing.T) {
		m := seedMap(t)
		keys := m.KeySet()

		removed, err := keys.Remove(1)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.False(t, m.ContainsKey(1))
		assert.ElementsMatch(t, []int{2, 3}, m.GetKeys("shared").Slice())
		requireReciprocal(t, m)

		removed, err = keys.Remove(1)
		require.NoError(t, err)
		assert.False(t, removed, "absent key is a no-op")
	})

	t.Run("RemoveAll", func(t *testing.T) {
		m := seedMap(t)

		dropped, err := m.KeySet().RemoveAll(1, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, dropped)
		assert.Equal(t, []int{3}, m.KeySet().Slice())
		requireReciprocal(t, m)
	})

	t.Run("RetainAll", func(t *testing.T) {
		m := seedMap(t)

		dropped, err := m.KeySet().RetainAll(3)
		require.NoError(t, err)
		assert.Equal(t, 4, dropped)
		assert.Equal(t, []int{3}, m.KeySet().Slice())
		requireReciprocal(t, m)
	})

	t.Run("ClearEmptiesWholeStructure", func(t *testing.T) {
		m := seedMap(t)

		m.KeySet().Clear()
		assert.True(t, m.IsEmpty())
		assert.Zero(t, m.ValueSet().Len())
	})

	t.Run("IsLive", func(t *testing.T) {
		m := New[int, string]()
		keys := m.KeySet()
		assert.True(t, keys.IsEmpty())

		_, err := m.Put(1, "a")
		require.NoError(t, err)
		assert.True(t, keys.Contains(1))
		assert.Equal(t, 1, keys.Len())
	})
}

func TestViewNilRejection(t *testing.T) {
	m := New[*int, *string]()

	_, err := m.KeySet().Remove(nil)
	require.ErrorIs(t, err, ErrNilKey)

	_, err = m.ValueSet().Remove(nil)
	require.ErrorIs(t, err, ErrNilValue)

	_, err = m.Pairs().Remove(nil, new(string))
	require.ErrorIs(t, err, ErrNilKey)
}

func TestValueSet(t *testing.T) {
	m := seedMap(t)

	removed, err := m.ValueSet().Remove("shared")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, m.ContainsValue("shared"))
	assert.Equal(t, 3, m.Len(), "each key keeps its own value")
	requireReciprocal(t, m)
}

func TestMultiset(t *testing.T) {
	m := seedMap(t)
	keys := m.Keys()

	assert.Equal(t, m.Len(), keys.Len())
	assert.Equal(t, 3, keys.DistinctLen())
	assert.Equal(t, 2, keys.Count(1))
	assert.Zero(t, keys.Count(99))
	assert.True(t, keys.Contains(1))

	occurrences := make(map[int]int)
	for k := range keys.All() {
		occurrences[k]++
	}
	for k, n := range occurrences {
		assert.Equal(t, keys.Count(k), n)
	}

	values := m.Values()
	assert.Equal(t, 3, values.Count("shared"))
	assert.Equal(t, 1, values.Count("b"))

	// The distinct-element sub-view mutates the whole structure.
	_, err := keys.ElementSet().Remove(1)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), keys.Len())
	assert.Zero(t, keys.Count(1))
	requireReciprocal(t, m)
}

func TestPairSet(t *testing.T) {
	m := seedMap(t)
	pairs := m.Pairs()

	assert.Equal(t, m.Len(), pairs.Len())
	assert.True(t, pairs.Contains(1, "shared"))
	assert.False(t, pairs.Contains(1, "zzz"))

	removed, err := pairs.Remove(1, "shared")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, m.Contains(1, "shared"))
	assert.Equal(t, 5, m.Len())
	requireReciprocal(t, m)

	n := 0
	for range pairs.All() {
		n++
	}
	assert.Equal(t, pairs.Len(), n)
}

func TestForEachConcurrent(t *testing.T) {
	t.Run("VisitsEverything", func(t *testing.T) {
		m := New[int, int]()
		want := 0
		for k := 1; k <= 50; k++ {
			_, err := m.PutAll(k, k*10, k*10+1)
			require.NoError(t, err)
			want += k + k
		}

		var got atomic.Int64
		err := m.Pairs().ForEachConcurrent(context.Background(), 4, func(k, _ int) error {
			got.Add(int64(k))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(want), got.Load())
	})

	t.Run("PropagatesError", func(t *testing.T) {
		m := seedMap(t)

		err := m.Pairs().ForEachConcurrent(context.Background(), 2, func(k int, _ string) error {
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("HonorsCancel", func(t *testing.T) {
		m := seedMap(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := m.Pairs().ForEachConcurrent(ctx, 2, func(int, string) error {
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}
