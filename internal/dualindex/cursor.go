package dualindex

import "fmt"

// stepState is the per-outer-step flag of the flattened-pair traversal. It
// decides whether the outer entry is pruned when the traversal leaves it
// behind: an entry is pruned only when every visited element was removed
// through the cursor and none survived.
type stepState uint8

const (
	// stepUntouched: no element of the current slot has been left behind yet.
	stepUntouched stepState = iota
	// stepSurvived: at least one visited element was not removed.
	stepSurvived
	// stepDeletePending: every visited element was removed via the cursor.
	stepDeletePending
)

// leave returns the state after the element just visited is left behind,
// given whether it was removed through the cursor.
func (st stepState) leave(removed bool) stepState {
	if !removed {
		return stepSurvived
	}
	if st == stepSurvived {
		return st
	}
	return stepDeletePending
}

// PairCursor traverses the dual index one association at a time: outer
// iteration over (primary, slot) entries, inner iteration over the current
// slot, flattened to single-level pair iteration. The outer order is
// snapshotted at creation; ordering is stable only within one uninterrupted
// single-threaded pass.
//
// Removing through the cursor deletes the association from the live slot and
// fixes up the reciprocal index immediately, but the outer entry itself is
// pruned lazily, when the traversal (or Close) leaves the slot behind with
// nothing surviving.
type PairCursor[P, S comparable] struct {
	fwd *index[P, S]
	rev *index[S, P]
	sh  *shared

	outer []P
	oi    int
	inner []S
	ii    int

	st         stepState
	onElement  bool
	removedCur bool
	done       bool
	closed     bool
	err        error
}

// PairCursor returns a cursor over this direction's associations.
func (h Handle[P, S]) PairCursor() *PairCursor[P, S] {
	return &PairCursor[P, S]{
		fwd:   h.fwd,
		rev:   h.rev,
		sh:    h.sh,
		outer: h.fwd.primaries(),
		oi:    -1,
	}
}

// Next advances to the next association. It returns false when the
// traversal is exhausted or an error occurred; check Err afterwards.
func (c *PairCursor[P, S]) Next() bool {
	if c.err != nil || c.done || c.closed {
		return false
	}
	if c.onElement {
		c.st = c.st.leave(c.removedCur)
		c.removedCur = false
		c.onElement = false
	}
	c.ii++
	for c.inner == nil || c.ii >= len(c.inner) {
		c.pruneOuter()
		c.oi++
		if c.oi >= len(c.outer) {
			c.done = true
			return false
		}
		sl, ok := c.fwd.m[c.outer[c.oi]]
		if !ok {
			// Primary vanished since the snapshot was taken; nothing to
			// traverse under it.
			continue
		}
		if sl.len() == 0 {
			c.err = fmt.Errorf("%w: primary %v", ErrEmptySlot, c.outer[c.oi])
			return false
		}
		c.inner = sl.elements()
		c.ii = 0
		c.st = stepUntouched
	}
	c.onElement = true
	return true
}

// pruneOuter drops the outer entry left behind by the traversal when its
// whole slot was removed through the cursor.
func (c *PairCursor[P, S]) pruneOuter() {
	if c.oi < 0 || c.oi >= len(c.outer) || c.st != stepDeletePending {
		return
	}
	p := c.outer[c.oi]
	if sl, ok := c.fwd.m[p]; ok && sl.len() == 0 {
		delete(c.fwd.m, p)
	}
}

// Pair returns the current association. Calling it before the first Next,
// after exhaustion, or after a traversal error is an invalid cursor state.
func (c *PairCursor[P, S]) Pair() (P, S, error) {
	var zp P
	var zs S
	if c.err != nil {
		return zp, zs, c.err
	}
	if !c.onElement {
		return zp, zs, fmt.Errorf("%w: no current association", ErrCursorState)
	}
	return c.outer[c.oi], c.inner[c.ii], nil
}

// Remove deletes the current association from the live slot and shrinks or
// prunes the reciprocal slot of the paired element.
func (c *PairCursor[P, S]) Remove() error {
	if c.err != nil {
		return c.err
	}
	if !c.onElement {
		return fmt.Errorf("%w: no current association to remove", ErrCursorState)
	}
	if c.removedCur {
		return fmt.Errorf("%w: current association already removed", ErrCursorState)
	}
	p, s := c.outer[c.oi], c.inner[c.ii]
	sl, ok := c.fwd.m[p]
	if !ok || !sl.remove(s) {
		c.err = fmt.Errorf("%w: %v no longer holds %v", ErrMissingBackReference, p, s)
		return c.err
	}
	if !c.rev.removeFrom(s, p) {
		c.err = fmt.Errorf("%w: %v not found under %v", ErrMissingBackReference, p, s)
		return c.err
	}
	c.sh.count--
	c.removedCur = true
	return nil
}

// SetSecondary always fails: associations are set members, not entries with
// a replaceable value cell.
func (c *PairCursor[P, S]) SetSecondary(S) error {
	return ErrUnsupportedMutation
}

// Err returns the first error encountered during traversal, if any.
func (c *PairCursor[P, S]) Err() error { return c.err }

// Close commits the pending outer step, so a slot fully drained through the
// cursor is pruned even when the traversal is abandoned early. Closing an
// already closed cursor is a no-op.
func (c *PairCursor[P, S]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.onElement {
		c.st = c.st.leave(c.removedCur)
		c.onElement = false
	}
	c.pruneOuter()
	c.done = true
	return nil
}

// SlotCursor traverses outer (primary, slot) entries only, exposing each
// primary together with a live view of its slot. Removing through the cursor
// drops the whole current slot with full reciprocal fixup.
type SlotCursor[P, S comparable] struct {
	fwd *index[P, S]
	rev *index[S, P]
	sh  *shared

	outer      []P
	oi         int
	onEntry    bool
	removedCur bool
	done       bool
	err        error
}

// SlotCursor returns a cursor over this direction's (primary, slot) entries.
func (h Handle[P, S]) SlotCursor() *SlotCursor[P, S] {
	return &SlotCursor[P, S]{
		fwd:   h.fwd,
		rev:   h.rev,
		sh:    h.sh,
		outer: h.fwd.primaries(),
		oi:    -1,
	}
}

// Next advances to the next outer entry.
func (c *SlotCursor[P, S]) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	c.onEntry = false
	c.removedCur = false
	for {
		c.oi++
		if c.oi >= len(c.outer) {
			c.done = true
			return false
		}
		sl, ok := c.fwd.m[c.outer[c.oi]]
		if !ok {
			continue
		}
		if sl.len() == 0 {
			c.err = fmt.Errorf("%w: primary %v", ErrEmptySlot, c.outer[c.oi])
			return false
		}
		c.onEntry = true
		return true
	}
}

// Primary returns the current primary element.
func (c *SlotCursor[P, S]) Primary() (P, error) {
	var zp P
	if c.err != nil {
		return zp, c.err
	}
	if !c.onEntry {
		return zp, fmt.Errorf("%w: no current entry", ErrCursorState)
	}
	return c.outer[c.oi], nil
}

// Slot returns a live view of the current primary's slot.
func (c *SlotCursor[P, S]) Slot() (SlotView[P, S], error) {
	if c.err != nil {
		return SlotView[P, S]{}, c.err
	}
	if !c.onEntry {
		return SlotView[P, S]{}, fmt.Errorf("%w: no current entry", ErrCursorState)
	}
	return SlotView[P, S]{ix: c.fwd, p: c.outer[c.oi]}, nil
}

// Remove drops the current primary's whole slot with reciprocal fixup.
func (c *SlotCursor[P, S]) Remove() error {
	if c.err != nil {
		return c.err
	}
	if !c.onEntry {
		return fmt.Errorf("%w: no current entry to remove", ErrCursorState)
	}
	if c.removedCur {
		return fmt.Errorf("%w: current entry already removed", ErrCursorState)
	}
	if _, err := removeSlot(c.fwd, c.rev, c.sh, c.outer[c.oi]); err != nil {
		c.err = err
		return err
	}
	c.removedCur = true
	return nil
}

// Err returns the first error encountered during traversal, if any.
func (c *SlotCursor[P, S]) Err() error { return c.err }

// SplitCursor is a read-only association cursor supporting parallel
// decomposition. Split halves the unvisited outer snapshot, the closest
// analog to an outer structure's native split, and halves the advisory
// remaining-size estimate. The estimate is a scheduling hint only.
type SplitCursor[P, S comparable] struct {
	fwd *index[P, S]

	outer []P
	oi    int
	inner []S
	ii    int

	onElement bool
	done      bool
	err       error
	estimate  int
}

// SplitCursor returns a read-only, splittable cursor over this direction's
// associations.
func (h Handle[P, S]) SplitCursor() *SplitCursor[P, S] {
	return &SplitCursor[P, S]{
		fwd:      h.fwd,
		outer:    h.fwd.primaries(),
		oi:       -1,
		estimate: h.sh.count,
	}
}

// Split carves off roughly half of the unvisited outer entries into a new
// independent cursor, or returns nil when there is nothing left to share.
func (c *SplitCursor[P, S]) Split() *SplitCursor[P, S] {
	remaining := len(c.outer) - (c.oi + 1)
	if remaining < 2 {
		return nil
	}
	mid := c.oi + 1 + remaining/2
	carved := c.outer[mid:]
	c.outer = c.outer[:mid]
	half := c.estimate / 2
	c.estimate -= half
	return &SplitCursor[P, S]{
		fwd:      c.fwd,
		outer:    carved,
		oi:       -1,
		estimate: half,
	}
}

// EstimateLen returns the advisory number of associations left in this
// cursor's partition. It must never be used for correctness decisions.
func (c *SplitCursor[P, S]) EstimateLen() int { return c.estimate }

// Next advances to the next association in this cursor's partition.
func (c *SplitCursor[P, S]) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	c.onElement = false
	c.ii++
	for c.inner == nil || c.ii >= len(c.inner) {
		c.oi++
		if c.oi >= len(c.outer) {
			c.done = true
			return false
		}
		sl, ok := c.fwd.m[c.outer[c.oi]]
		if !ok {
			continue
		}
		if sl.len() == 0 {
			c.err = fmt.Errorf("%w: primary %v", ErrEmptySlot, c.outer[c.oi])
			return false
		}
		c.inner = sl.elements()
		c.ii = 0
	}
	if c.estimate > 0 {
		c.estimate--
	}
	c.onElement = true
	return true
}

// Pair returns the current association.
func (c *SplitCursor[P, S]) Pair() (P, S, error) {
	var zp P
	var zs S
	if c.err != nil {
		return zp, zs, c.err
	}
	if !c.onElement {
		return zp, zs, fmt.Errorf("%w: no current association", ErrCursorState)
	}
	return c.outer[c.oi], c.inner[c.ii], nil
}

// Err returns the first error encountered during traversal, if any.
func (c *SplitCursor[P, S]) Err() error { return c.err }
