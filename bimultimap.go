package bimultimap

import (
	"fmt"
	"iter"

	"github.com/hupe1980/bimultimap/internal/dualindex"
)

// BiMultiMap is a bidirectional many-to-many associative container. Each key
// maps to a set of values and each value maps back to the set of keys
// referencing it; both directions are maintained as one atomic unit.
//
// Associations are unique per (key, value) pair. Keys and values must be
// comparable; nil keys and values are rejected.
//
// A BiMultiMap is not safe for concurrent mutation; see the package
// documentation for the threading model.
type BiMultiMap[K, V comparable] struct {
	fwd dualindex.Handle[K, V]
	rev dualindex.Handle[V, K]
}

// New creates an empty BiMultiMap.
func New[K, V comparable](opts ...Option) *BiMultiMap[K, V] {
	o := options{
		logger: NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	fwd, rev := dualindex.New[K, V](
		o.logger.WithSide("keys").Logger,
		o.logger.WithSide("values").Logger,
		o.keyCapacity, o.valueCapacity,
	)
	return &BiMultiMap[K, V]{fwd: fwd, rev: rev}
}

// Put inserts the association (key, value) and reports whether it was newly
// created. Inserting an existing association is a no-op returning false.
func (m *BiMultiMap[K, V]) Put(key K, value V) (bool, error) {
	added, err := m.fwd.Add(key, value)
	return added, asKeyErr(err)
}

// PutAll inserts an association from key to every given value and returns
// the number of associations actually created.
func (m *BiMultiMap[K, V]) PutAll(key K, values ...V) (int, error) {
	added, err := m.fwd.AddAll(key, values)
	return added, asKeyErr(err)
}

// Remove deletes the association (key, value) and reports whether it
// existed.
func (m *BiMultiMap[K, V]) Remove(key K, value V) (bool, error) {
	removed, err := m.fwd.RemovePair(key, value)
	return removed, asKeyErr(err)
}

// RemoveKey deletes every association involving key and returns the values
// that were associated with it. Removing an absent key is a nil no-op.
func (m *BiMultiMap[K, V]) RemoveKey(key K) ([]V, error) {
	removed, err := m.fwd.RemoveSlot(key)
	return removed, asKeyErr(err)
}

// RemoveValue deletes every association involving value and returns the keys
// that were associated with it. Removing an absent value is a nil no-op.
func (m *BiMultiMap[K, V]) RemoveValue(value V) ([]K, error) {
	removed, err := m.rev.RemoveSlot(value)
	return removed, asValueErr(err)
}

// RemoveKeys deletes every association involving any of the given keys and
// returns the number of associations dropped.
func (m *BiMultiMap[K, V]) RemoveKeys(keys ...K) (int, error) {
	dropped, err := m.fwd.RemoveAll(keys)
	return dropped, asKeyErr(err)
}

// RemoveValues deletes every association involving any of the given values
// and returns the number of associations dropped.
func (m *BiMultiMap[K, V]) RemoveValues(values ...V) (int, error) {
	dropped, err := m.rev.RemoveAll(values)
	return dropped, asValueErr(err)
}

// RetainKeys deletes every association whose key is NOT among the given keys
// and returns the number of associations dropped.
func (m *BiMultiMap[K, V]) RetainKeys(keys ...K) (int, error) {
	dropped, err := m.fwd.RetainAll(keys)
	return dropped, asKeyErr(err)
}

// Clear removes every association. Both indices and the association count
// reset together.
func (m *BiMultiMap[K, V]) Clear() {
	m.fwd.Clear()
}

// ContainsKey reports whether key has at least one association.
func (m *BiMultiMap[K, V]) ContainsKey(key K) bool {
	return m.fwd.Contains(key)
}

// ContainsValue reports whether value has at least one association.
func (m *BiMultiMap[K, V]) ContainsValue(value V) bool {
	return m.rev.Contains(value)
}

// Contains reports whether the association (key, value) exists.
func (m *BiMultiMap[K, V]) Contains(key K, value V) bool {
	return m.fwd.ContainsPair(key, value)
}

// Get returns a live, read-only view of the values associated with key. The
// view is empty while the key is absent and tracks the key's slot as it is
// created, mutated, and pruned.
func (m *BiMultiMap[K, V]) Get(key K) SetView[K, V] {
	return SetView[K, V]{view: m.fwd.Slot(key)}
}

// GetKeys returns a live, read-only view of the keys associated with value.
func (m *BiMultiMap[K, V]) GetKeys(value V) SetView[V, K] {
	return SetView[V, K]{view: m.rev.Slot(value)}
}

// Len returns the total number of associations.
func (m *BiMultiMap[K, V]) Len() int { return m.fwd.Len() }

// KeyLen returns the number of distinct keys.
func (m *BiMultiMap[K, V]) KeyLen() int { return m.fwd.PrimaryLen() }

// ValueLen returns the number of distinct values.
func (m *BiMultiMap[K, V]) ValueLen() int { return m.rev.PrimaryLen() }

// IsEmpty reports whether the map holds no associations.
func (m *BiMultiMap[K, V]) IsEmpty() bool { return m.fwd.Len() == 0 }

// All iterates over every (key, value) association. Ordering is stable only
// within one uninterrupted pass.
func (m *BiMultiMap[K, V]) All() iter.Seq2[K, V] {
	return m.fwd.Pairs()
}

// KeySet returns the live set view of distinct keys. Removing a key through
// the view drops the key's whole slot.
func (m *BiMultiMap[K, V]) KeySet() PrimarySet[K, V] {
	return PrimarySet[K, V]{h: m.fwd, wrapErr: asKeyErr}
}

// ValueSet returns the live set view of distinct values.
func (m *BiMultiMap[K, V]) ValueSet() PrimarySet[V, K] {
	return PrimarySet[V, K]{h: m.rev, wrapErr: asValueErr}
}

// Keys returns the live multiplicity view of keys: each key appears once per
// association it participates in.
func (m *BiMultiMap[K, V]) Keys() Multiset[K, V] {
	return Multiset[K, V]{h: m.fwd, wrapErr: asKeyErr}
}

// Values returns the live multiplicity view of values.
func (m *BiMultiMap[K, V]) Values() Multiset[V, K] {
	return Multiset[V, K]{h: m.rev, wrapErr: asValueErr}
}

// Pairs returns the live flattened view of (key, value) associations.
func (m *BiMultiMap[K, V]) Pairs() PairSet[K, V] {
	return PairSet[K, V]{h: m.fwd, wrapErr: asKeyErr}
}

// Inverse returns a live inverse of the map: values become keys and keys
// become values. The inverse shares state with the original, so mutations
// through either are immediately visible through both.
func (m *BiMultiMap[K, V]) Inverse() *BiMultiMap[V, K] {
	return &BiMultiMap[V, K]{fwd: m.rev, rev: m.fwd}
}

// Clone returns a deep copy holding the same associations.
func (m *BiMultiMap[K, V]) Clone() *BiMultiMap[K, V] {
	clone := New[K, V](WithKeyCapacity(m.KeyLen()), WithValueCapacity(m.ValueLen()))
	for k, v := range m.fwd.Pairs() {
		// Elements already passed validation when they were first stored.
		_, _ = clone.fwd.Add(k, v)
	}
	return clone
}

// String returns a diagnostic summary. Contents are omitted because map
// iteration order would make the representation unstable.
func (m *BiMultiMap[K, V]) String() string {
	return fmt.Sprintf("bimultimap[%d keys, %d values, %d associations]", m.KeyLen(), m.ValueLen(), m.Len())
}
