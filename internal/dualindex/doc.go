// Package dualindex implements the reciprocal two-index state behind a
// bidirectional multimap.
//
// The package keeps a key→values index and a value→keys index plus a single
// running association count. Both indices are mutated only by the paired
// update functions in this package, so they cannot drift apart through any
// public operation. Each direction is exposed as a Handle; the two handles
// returned by New share the same underlying state with the roles of the
// indices swapped.
package dualindex
