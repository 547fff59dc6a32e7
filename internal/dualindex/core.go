package dualindex

import (
	"fmt"
	"iter"
	"log/slog"
)

// shared is the state common to both directions: the association count. It
// must equal the sum of all slot sizes in either index.
type shared struct {
	count int
}

// Handle is the dual-index core viewed from one direction: fwd maps this
// direction's primaries to slots of secondaries, rev is the reciprocal
// index. The two handles returned by New share the same underlying state, so
// a mutation through either is immediately visible through both.
//
// Handles are not safe for concurrent mutation; see the package
// documentation of the facade for the threading model.
type Handle[P, S comparable] struct {
	fwd *index[P, S]
	rev *index[S, P]
	sh  *shared
	log *slog.Logger
}

// New creates an empty dual index and returns its two reciprocal handles.
// The capacities size the initial key-side and value-side maps. Each handle
// logs through its own side-tagged logger; neither may be nil.
func New[K, V comparable](keyLog, valueLog *slog.Logger, keyCapacity, valueCapacity int) (Handle[K, V], Handle[V, K]) {
	fwd := &index[K, V]{m: make(map[K]slot[V], keyCapacity), baseCap: keyCapacity}
	rev := &index[V, K]{m: make(map[V]slot[K], valueCapacity), baseCap: valueCapacity}
	sh := &shared{}
	return Handle[K, V]{fwd: fwd, rev: rev, sh: sh, log: keyLog},
		Handle[V, K]{fwd: rev, rev: fwd, sh: sh, log: valueLog}
}

// Add inserts the association (p, s) into both indices and reports whether
// it was newly created.
func (h Handle[P, S]) Add(p P, s S) (bool, error) {
	return addPair(h.fwd, h.rev, h.sh, p, s)
}

// AddAll inserts every (p, s) association for the given secondaries and
// returns the number of associations actually created.
func (h Handle[P, S]) AddAll(p P, ss []S) (int, error) {
	return addAll(h.fwd, h.rev, h.sh, p, ss)
}

// RemovePair removes the association (p, s) from both indices and reports
// whether it existed.
func (h Handle[P, S]) RemovePair(p P, s S) (bool, error) {
	return removePair(h.fwd, h.rev, h.sh, p, s)
}

// RemoveSlot deletes p's entire slot, fixing up the reciprocal index for
// every removed secondary. It returns the removed secondaries; removing an
// absent primary is a nil no-op, not an error.
func (h Handle[P, S]) RemoveSlot(p P) ([]S, error) {
	return removeSlot(h.fwd, h.rev, h.sh, p)
}

// RemoveAll removes the slots of every primary in ps and returns the number
// of associations dropped. It picks between a per-primary sweep and a bulk
// set-difference pass based on the relative sizes of ps and the index; the
// two strategies yield identical final state.
func (h Handle[P, S]) RemoveAll(ps []P) (int, error) {
	for _, p := range ps {
		if isAbsent(p) {
			return 0, ErrNilPrimary
		}
	}
	if len(ps) < h.fwd.len() {
		h.log.Debug("bulk removal strategy", "strategy", "per-primary", "collection", len(ps), "index", h.fwd.len())
		return removeAllPerPrimary(h.fwd, h.rev, h.sh, ps)
	}
	h.log.Debug("bulk removal strategy", "strategy", "set-difference", "collection", len(ps), "index", h.fwd.len())
	return removeAllBulk(h.fwd, h.rev, h.sh, ps)
}

// RetainAll removes the slot of every primary NOT in ps and returns the
// number of associations dropped.
func (h Handle[P, S]) RetainAll(ps []P) (int, error) {
	for _, p := range ps {
		if isAbsent(p) {
			return 0, ErrNilPrimary
		}
	}
	keep := make(map[P]struct{}, len(ps))
	for _, p := range ps {
		keep[p] = struct{}{}
	}
	drop := make([]P, 0)
	for p := range h.fwd.m {
		if _, ok := keep[p]; !ok {
			drop = append(drop, p)
		}
	}
	return h.RemoveAll(drop)
}

// Clear resets both indices and the association count together. The indices
// keep their configured initial capacities.
func (h Handle[P, S]) Clear() {
	h.log.Debug("clearing dual index", "associations", h.sh.count)
	h.fwd.reset()
	h.rev.reset()
	h.sh.count = 0
}

// Contains reports whether p has at least one association.
func (h Handle[P, S]) Contains(p P) bool {
	return !isAbsent(p) && h.fwd.contains(p)
}

// ContainsPair reports whether the association (p, s) exists.
func (h Handle[P, S]) ContainsPair(p P, s S) bool {
	if isAbsent(p) || isAbsent(s) {
		return false
	}
	return h.fwd.m[p].has(s)
}

// Slot returns a live, read-only view of p's slot. The view is empty while p
// is absent and tracks the slot as it is created, mutated, and pruned.
func (h Handle[P, S]) Slot(p P) SlotView[P, S] {
	if isAbsent(p) {
		return SlotView[P, S]{}
	}
	return SlotView[P, S]{ix: h.fwd, p: p}
}

// Count returns p's slot size, 0 if p is absent.
func (h Handle[P, S]) Count(p P) int {
	if isAbsent(p) {
		return 0
	}
	return h.fwd.m[p].len()
}

// Len returns the total number of associations.
func (h Handle[P, S]) Len() int { return h.sh.count }

// PrimaryLen returns the number of distinct primaries on this side.
func (h Handle[P, S]) PrimaryLen() int { return h.fwd.len() }

// Primaries returns a snapshot of this side's primaries.
func (h Handle[P, S]) Primaries() []P { return h.fwd.primaries() }

// PrimarySeq iterates over this side's primaries.
func (h Handle[P, S]) PrimarySeq() iter.Seq[P] {
	return func(yield func(P) bool) {
		for p := range h.fwd.m {
			if !yield(p) {
				return
			}
		}
	}
}

// Pairs iterates over every association in this direction's orientation.
func (h Handle[P, S]) Pairs() iter.Seq2[P, S] {
	return func(yield func(P, S) bool) {
		for p, sl := range h.fwd.m {
			for s := range sl {
				if !yield(p, s) {
					return
				}
			}
		}
	}
}

// addPair is the single-association paired update. Both insertions must
// agree on whether the association was new; disagreement means the indices
// had already diverged.
func addPair[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, p P, s S) (bool, error) {
	if isAbsent(p) {
		return false, ErrNilPrimary
	}
	if isAbsent(s) {
		return false, ErrNilSecondary
	}
	addedFwd := fwd.getOrCreate(p).add(s)
	addedRev := rev.getOrCreate(s).add(p)
	if addedFwd != addedRev {
		return false, fmt.Errorf("%w: add(%v, %v) forward=%t reciprocal=%t", ErrDivergence, p, s, addedFwd, addedRev)
	}
	if addedFwd {
		sh.count++
	}
	return addedFwd, nil
}

// addAll bulk-inserts secondaries for one primary. The primary's slot size
// delta drives the count; only elements that were actually new get a
// reciprocal back-reference.
func addAll[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, p P, ss []S) (int, error) {
	if isAbsent(p) {
		return 0, ErrNilPrimary
	}
	for _, s := range ss {
		if isAbsent(s) {
			return 0, ErrNilSecondary
		}
	}
	if len(ss) == 0 {
		return 0, nil
	}
	sl := fwd.getOrCreate(p)
	before := sl.len()
	for _, s := range ss {
		if !sl.add(s) {
			continue
		}
		if !rev.getOrCreate(s).add(p) {
			return 0, fmt.Errorf("%w: addAll(%v) reciprocal already held %v", ErrDivergence, p, s)
		}
	}
	delta := sl.len() - before
	sh.count += delta
	return delta, nil
}

func removePair[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, p P, s S) (bool, error) {
	if isAbsent(p) {
		return false, ErrNilPrimary
	}
	if isAbsent(s) {
		return false, ErrNilSecondary
	}
	remFwd := fwd.removeFrom(p, s)
	remRev := rev.removeFrom(s, p)
	if remFwd != remRev {
		return false, fmt.Errorf("%w: remove(%v, %v) forward=%t reciprocal=%t", ErrDivergence, p, s, remFwd, remRev)
	}
	if remFwd {
		sh.count--
	}
	return remFwd, nil
}

func removeSlot[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, p P) ([]S, error) {
	if isAbsent(p) {
		return nil, ErrNilPrimary
	}
	sl, ok := fwd.m[p]
	if !ok {
		return nil, nil
	}
	delete(fwd.m, p)
	removed := sl.elements()
	for _, s := range removed {
		if !rev.removeFrom(s, p) {
			return removed, fmt.Errorf("%w: %v not found under %v", ErrMissingBackReference, p, s)
		}
	}
	sh.count -= len(removed)
	return removed, nil
}

// removeAllPerPrimary sweeps the removal collection, dropping one slot at a
// time. Preferable when the collection is small relative to the index.
func removeAllPerPrimary[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, ps []P) (int, error) {
	total := 0
	for _, p := range ps {
		removed, err := removeSlot(fwd, rev, sh, p)
		if err != nil {
			return total, err
		}
		total += len(removed)
	}
	return total, nil
}

// removeAllBulk drops the primaries as a set difference, then intersects the
// removed set away from every surviving reciprocal slot. The count decreases
// by the observed reciprocal shrink, which must match the dropped slot sizes.
func removeAllBulk[P, S comparable](fwd *index[P, S], rev *index[S, P], sh *shared, ps []P) (int, error) {
	dropped := make(map[P]struct{}, len(ps))
	expected := 0
	for _, p := range ps {
		if _, seen := dropped[p]; seen {
			continue
		}
		sl, ok := fwd.m[p]
		if !ok {
			continue
		}
		delete(fwd.m, p)
		dropped[p] = struct{}{}
		expected += sl.len()
	}
	if len(dropped) == 0 {
		return 0, nil
	}
	shrunk := 0
	for s, sl := range rev.m {
		for p := range dropped {
			if sl.remove(p) {
				shrunk++
			}
		}
		if sl.len() == 0 {
			delete(rev.m, s)
		}
	}
	if shrunk != expected {
		return shrunk, fmt.Errorf("%w: dropped %d associations but reciprocal shrank by %d", ErrDivergence, expected, shrunk)
	}
	sh.count -= shrunk
	return shrunk, nil
}
