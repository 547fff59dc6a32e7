package bimultimap

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bimultimap/internal/dualindex"
)

// SetView is a live, read-only view of the elements associated with one
// primary element (the values of a key, or the keys of a value). It tracks
// the backing slot as it is created, mutated, and pruned.
type SetView[P, S comparable] struct {
	view dualindex.SlotView[P, S]
}

// Contains reports whether x is currently associated with the primary.
func (v SetView[P, S]) Contains(x S) bool { return v.view.Contains(x) }

// Len returns the current number of associated elements.
func (v SetView[P, S]) Len() int { return v.view.Len() }

// IsEmpty reports whether the view is currently empty.
func (v SetView[P, S]) IsEmpty() bool { return v.view.IsEmpty() }

// All iterates over the currently associated elements.
func (v SetView[P, S]) All() iter.Seq[S] { return v.view.All() }

// Slice returns a snapshot of the currently associated elements.
func (v SetView[P, S]) Slice() []S { return v.view.Slice() }

// PrimarySet is a live set view over one side's distinct elements (keys or
// values). Mutating the view mutates the whole structure: removing an
// element drops its entire slot together with every reciprocal
// back-reference, and Clear empties both directions.
type PrimarySet[P, S comparable] struct {
	h dualindex.Handle[P, S]
	// wrapErr maps direction-neutral core errors onto the key/value
	// vocabulary of the facade that created the view.
	wrapErr func(error) error
}

// Contains reports whether p has at least one association.
func (s PrimarySet[P, S]) Contains(p P) bool { return s.h.Contains(p) }

// Len returns the number of distinct elements on this side.
func (s PrimarySet[P, S]) Len() int { return s.h.PrimaryLen() }

// IsEmpty reports whether the set is empty.
func (s PrimarySet[P, S]) IsEmpty() bool { return s.h.PrimaryLen() == 0 }

// Remove deletes p's whole slot, not a single membership bit, and reports
// whether p was present.
func (s PrimarySet[P, S]) Remove(p P) (bool, error) {
	removed, err := s.h.RemoveSlot(p)
	return len(removed) > 0, s.wrapErr(err)
}

// RemoveAll deletes the slots of every given element and returns the number
// of associations dropped.
func (s PrimarySet[P, S]) RemoveAll(ps ...P) (int, error) {
	dropped, err := s.h.RemoveAll(ps)
	return dropped, s.wrapErr(err)
}

// RetainAll deletes the slot of every element NOT among ps and returns the
// number of associations dropped.
func (s PrimarySet[P, S]) RetainAll(ps ...P) (int, error) {
	dropped, err := s.h.RetainAll(ps)
	return dropped, s.wrapErr(err)
}

// Clear empties the entire dual structure, both directions at once.
func (s PrimarySet[P, S]) Clear() { s.h.Clear() }

// All iterates over the distinct elements.
func (s PrimarySet[P, S]) All() iter.Seq[P] { return s.h.PrimarySeq() }

// Slice returns a snapshot of the distinct elements.
func (s PrimarySet[P, S]) Slice() []P { return s.h.Primaries() }

// Cursor returns a cursor over (element, slot view) entries supporting
// whole-slot removal mid-traversal.
func (s PrimarySet[P, S]) Cursor() *SetCursor[P, S] {
	return &SetCursor[P, S]{c: s.h.SlotCursor()}
}

// Multiset is a live multiplicity view over one side: each element appears
// once per association it participates in. It is read-only; mutate through
// ElementSet or the owning map.
type Multiset[P, S comparable] struct {
	h       dualindex.Handle[P, S]
	wrapErr func(error) error
}

// Len returns the total number of associations.
func (ms Multiset[P, S]) Len() int { return ms.h.Len() }

// DistinctLen returns the number of distinct elements.
func (ms Multiset[P, S]) DistinctLen() int { return ms.h.PrimaryLen() }

// Count returns p's multiplicity: the size of its slot, 0 if absent.
func (ms Multiset[P, S]) Count(p P) int { return ms.h.Count(p) }

// Contains reports whether p occurs at least once.
func (ms Multiset[P, S]) Contains(p P) bool { return ms.h.Contains(p) }

// All iterates over the elements, each repeated by its multiplicity.
func (ms Multiset[P, S]) All() iter.Seq[P] {
	return func(yield func(P) bool) {
		for p := range ms.h.Pairs() {
			if !yield(p) {
				return
			}
		}
	}
}

// ElementSet returns the distinct-element sub-view, which delegates to the
// primary set view.
func (ms Multiset[P, S]) ElementSet() PrimarySet[P, S] {
	return PrimarySet[P, S]{h: ms.h, wrapErr: ms.wrapErr}
}

// PairSet is the live flattened view of associations as (primary, secondary)
// pairs.
type PairSet[P, S comparable] struct {
	h       dualindex.Handle[P, S]
	wrapErr func(error) error
}

// Len returns the total number of associations.
func (ps PairSet[P, S]) Len() int { return ps.h.Len() }

// IsEmpty reports whether there are no associations.
func (ps PairSet[P, S]) IsEmpty() bool { return ps.h.Len() == 0 }

// Contains reports whether the association (p, s) exists.
func (ps PairSet[P, S]) Contains(p P, s S) bool { return ps.h.ContainsPair(p, s) }

// Remove deletes the association (p, s) and reports whether it existed.
func (ps PairSet[P, S]) Remove(p P, s S) (bool, error) {
	removed, err := ps.h.RemovePair(p, s)
	return removed, ps.wrapErr(err)
}

// All iterates over every association.
func (ps PairSet[P, S]) All() iter.Seq2[P, S] { return ps.h.Pairs() }

// Cursor returns a flattened-pair cursor supporting in-place removal.
func (ps PairSet[P, S]) Cursor() *PairCursor[P, S] {
	return &PairCursor[P, S]{c: ps.h.PairCursor()}
}

// SplitCursor returns a read-only cursor supporting parallel decomposition.
func (ps PairSet[P, S]) SplitCursor() *SplitCursor[P, S] {
	return &SplitCursor[P, S]{c: ps.h.SplitCursor()}
}

// ForEachConcurrent traverses every association with up to parallelism
// goroutines, splitting the traversal into disjoint partitions. fn must not
// mutate the map; the first error cancels the remaining work.
func (ps PairSet[P, S]) ForEachConcurrent(ctx context.Context, parallelism int, fn func(P, S) error) error {
	if parallelism < 1 {
		parallelism = 1
	}

	cursors := []*dualindex.SplitCursor[P, S]{ps.h.SplitCursor()}
	for len(cursors) < parallelism {
		grown := false
		for _, c := range cursors {
			if len(cursors) >= parallelism {
				break
			}
			if half := c.Split(); half != nil {
				cursors = append(cursors, half)
				grown = true
			}
		}
		if !grown {
			break
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range cursors {
		g.Go(func() error {
			for c.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				p, s, err := c.Pair()
				if err != nil {
					return err
				}
				if err := fn(p, s); err != nil {
					return err
				}
			}
			return c.Err()
		})
	}
	return g.Wait()
}
