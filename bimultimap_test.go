package bimultimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireReciprocal verifies that every association is visible from both
// directions and that Len matches a full enumeration of either side.
func requireReciprocal[K, V comparable](t *testing.T, m *BiMultiMap[K, V]) {
	t.Helper()

	fromKeys := 0
	for k := range m.KeySet().All() {
		for v := range m.Get(k).All() {
			require.True(t, m.GetKeys(v).Contains(k), "missing %v under %v", k, v)
			fromKeys++
		}
	}

	fromValues := 0
	for v := range m.ValueSet().All() {
		for k := range m.GetKeys(v).All() {
			require.True(t, m.Get(k).Contains(v), "missing %v under %v", v, k)
			fromValues++
		}
	}

	require.Equal(t, m.Len(), fromKeys)
	require.Equal(t, m.Len(), fromValues)
}

func TestBiMultiMap(t *testing.T) {
	t.Run("PutTwice", func(t *testing.T) {
		m := New[int, string]()

		added, err := m.Put(1, "a")
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 1, m.Len())

		added, err = m.Put(1, "a")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, 1, m.Len())
		requireReciprocal(t, m)
	})

	t.Run("SharedKeyAndValue", func(t *testing.T) {
		m := New[int, string]()

		for _, p := range []struct {
			k int
			v string
		}{{1, "a"}, {1, "b"}, {2, "a"}} {
			added, err := m.Put(p.k, p.v)
			require.NoError(t, err)
			require.True(t, added)
		}

		assert.ElementsMatch(t, []string{"a", "b"}, m.Get(1).Slice())
		assert.ElementsMatch(t, []int{1, 2}, m.GetKeys("a").Slice())
		assert.Equal(t, 3, m.Len())
		requireReciprocal(t, m)

		removed, err := m.Remove(1, "a")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.ElementsMatch(t, []string{"b"}, m.Get(1).Slice())
		assert.ElementsMatch(t, []int{2}, m.GetKeys("a").Slice())
		assert.Equal(t, 2, m.Len())
		requireReciprocal(t, m)
	})

	t.Run("RemoveKey", func(t *testing.T) {
		m := New[int, string]()

		_, err := m.PutAll(1, "a", "b")
		require.NoError(t, err)
		_, err = m.Put(2, "a")
		require.NoError(t, err)

		removed, err := m.RemoveKey(1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, removed)
		assert.False(t, m.ContainsKey(1))
		assert.False(t, m.ContainsValue("b"), "b lost its only key")
		assert.ElementsMatch(t, []int{2}, m.GetKeys("a").Slice())
		requireReciprocal(t, m)
	})

	t.Run("RemoveValue", func(t *testing.T) {
		m := New[int, string]()

		_, err := m.Put(1, "a")
		require.NoError(t, err)
		_, err = m.Put(2, "a")
		require.NoError(t, err)
		_, err = m.Put(2, "b")
		require.NoError(t, err)

		removed, err := m.RemoveValue("a")
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2}, removed)
		assert.False(t, m.ContainsValue("a"))
		assert.False(t, m.ContainsKey(1))
		assert.ElementsMatch(t, []string{"b"}, m.Get(2).Slice())
		requireReciprocal(t, m)
	})

	t.Run("RemoveKeysKeepsSurvivors", func(t *testing.T) {
		m := New[int, string]()
		for k := 1; k <= 3; k++ {
			_, err := m.PutAll(k, "shared", "own")
			require.NoError(t, err)
		}

		dropped, err := m.RemoveKeys(1, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, dropped)
		assert.False(t, m.ContainsKey(1))
		assert.False(t, m.ContainsKey(2))
		assert.ElementsMatch(t, []string{"shared", "own"}, m.Get(3).Slice())
		assert.ElementsMatch(t, []int{3}, m.GetKeys("shared").Slice())
		requireReciprocal(t, m)
	})

	t.Run("Clear", func(t *testing.T) {
		m := New[int, string]()
		_, err := m.PutAll(1, "a", "b")
		require.NoError(t, err)

		m.Clear()

		assert.Zero(t, m.Len())
		assert.True(t, m.IsEmpty())
		assert.Zero(t, m.KeySet().Len())
		assert.Zero(t, m.ValueSet().Len())
		assert.Zero(t, m.Keys().Len())
		assert.Zero(t, m.Pairs().Len())
		requireReciprocal(t, m)
	})

	t.Run("PutAllReportsTrueDelta", func(t *testing.T) {
		m := New[int, string]()
		_, err := m.Put(1, "a")
		require.NoError(t, err)

		added, err := m.PutAll(1, "a", "b", "c")
		require.NoError(t, err)
		assert.Equal(t, 2, added)
		assert.Equal(t, 3, m.Len())
	})

	t.Run("NilRejection", func(t *testing.T) {
		m := New[*int, *string]()
		k := new(int)
		v := new(string)

		_, err := m.Put(nil, v)
		require.ErrorIs(t, err, ErrNilKey)

		_, err = m.Put(k, nil)
		require.ErrorIs(t, err, ErrNilValue)

		_, err = m.RemoveValue(nil)
		require.ErrorIs(t, err, ErrNilValue)

		_, err = m.PutAll(k, v, nil)
		require.ErrorIs(t, err, ErrNilValue)
		assert.True(t, m.IsEmpty(), "rejected calls must not partially apply")
	})

	t.Run("InterfaceKeys", func(t *testing.T) {
		m := New[any, string]()

		_, err := m.Put(nil, "a")
		require.ErrorIs(t, err, ErrNilKey)

		added, err := m.Put(42, "a")
		require.NoError(t, err)
		assert.True(t, added)
		assert.True(t, m.ContainsKey(42))
	})
}

func TestInverse(t *testing.T) {
	m := New[int, string]()
	_, err := m.Put(1, "a")
	require.NoError(t, err)
	_, err = m.Put(2, "a")
	require.NoError(t, err)

	inv := m.Inverse()
	assert.Equal(t, m.Len(), inv.Len())
	assert.ElementsMatch(t, []int{1, 2}, inv.Get("a").Slice())

	// Mutations through the inverse are visible in the original.
	added, err := inv.Put("b", 3)
	require.NoError(t, err)
	require.True(t, added)
	assert.True(t, m.Contains(3, "b"))

	removed, err := inv.RemoveKey("a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, removed)
	assert.False(t, m.ContainsValue("a"))
	requireReciprocal(t, m)
	requireReciprocal(t, inv)
}

func TestClone(t *testing.T) {
	m := New[int, string]()
	_, err := m.PutAll(1, "a", "b")
	require.NoError(t, err)

	clone := m.Clone()
	assert.Equal(t, m.Len(), clone.Len())
	assert.ElementsMatch(t, m.Get(1).Slice(), clone.Get(1).Slice())

	// The clone is independent.
	_, err = clone.Put(2, "c")
	require.NoError(t, err)
	assert.False(t, m.ContainsKey(2))
	requireReciprocal(t, clone)
}

func TestString(t *testing.T) {
	m := New[int, string]()
	_, err := m.PutAll(1, "a", "b")
	require.NoError(t, err)

	assert.Equal(t, "bimultimap[1 keys, 2 values, 2 associations]", m.String())
}

func BenchmarkPut(b *testing.B) {
	m := New[int, int]()
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		_, _ = m.Put(i%1000, i)
	}
}

func BenchmarkPairTraversal(b *testing.B) {
	m := New[int, int]()
	for i := 0; i < 10000; i++ {
		_, _ = m.Put(i%100, i)
	}
	b.ResetTimer()
	for b.Loop() {
		n := 0
		for range m.All() {
			n++
		}
	}
}
