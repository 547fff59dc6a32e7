// Package bimultimap provides a bidirectional many-to-many associative
// container for Go.
//
// A BiMultiMap links keys to values such that each key may map to multiple
// values, each value may map back to multiple keys, and the two directions
// stay perpetually consistent: inserting (k, v) makes v visible under k and
// k visible under v in one atomic step, and every removal path (single pair,
// whole key, whole value, bulk, cursor-driven, clear) keeps both indices in
// lockstep.
//
// # Quick Start
//
//	m := bimultimap.New[int, string]()
//	m.Put(1, "a")
//	m.Put(1, "b")
//	m.Put(2, "a")
//
//	m.Get(1).Slice()              // ["a", "b"]
//	m.Inverse().Get("a").Slice()  // [1, 2]
//	m.Len()                       // 3 associations
//
// # Live Views
//
// Derived collections are live: they read through to the backing structure
// and their mutations propagate back to it.
//
//	keys := m.KeySet()     // distinct keys; Remove drops a key's whole slot
//	counts := m.Keys()     // keys with multiplicity; Len() == m.Len()
//	pairs := m.Pairs()     // flattened (key, value) associations
//
// # Cursors
//
// Views hand out cursors supporting single-pass forward traversal and
// in-place removal:
//
//	c := m.Pairs().Cursor()
//	defer c.Close()
//	for c.Next() {
//	    k, v, _ := c.Pair()
//	    if obsolete(k, v) {
//	        c.Remove()
//	    }
//	}
//
// Read-only traversal can be decomposed for parallel consumption via
// SplitCursor or driven directly with ForEachConcurrent.
//
// # Threading Model
//
// A BiMultiMap is not safe for concurrent mutation. All operations complete
// synchronously on the calling goroutine; mutation through any view or
// cursor is immediately visible to every other live view. Concurrent reads
// without a writer are safe.
package bimultimap
