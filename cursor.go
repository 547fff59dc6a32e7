package bimultimap

import "github.com/hupe1980/bimultimap/internal/dualindex"

// PairCursor traverses associations one pair at a time and supports removing
// the current association mid-traversal. Ordering is stable only within one
// uninterrupted single-threaded pass.
//
// A fully drained key is pruned from the structure when the traversal leaves
// it behind; Close commits that pruning for abandoned traversals, so cursors
// used for removal should always be closed.
type PairCursor[P, S comparable] struct {
	c *dualindex.PairCursor[P, S]
}

// Next advances to the next association. It returns false when the
// traversal is exhausted or an error occurred; check Err afterwards.
func (c *PairCursor[P, S]) Next() bool { return c.c.Next() }

// Pair returns the current association. Calling it before the first Next or
// after exhaustion returns ErrCursorState.
func (c *PairCursor[P, S]) Pair() (P, S, error) { return c.c.Pair() }

// Remove deletes the current association with full reciprocal fixup.
func (c *PairCursor[P, S]) Remove() error { return c.c.Remove() }

// SetValue always returns ErrUnsupportedMutation: associations have no
// independently replaceable value cell.
func (c *PairCursor[P, S]) SetValue(s S) error { return c.c.SetSecondary(s) }

// Err returns the first error encountered during traversal, if any.
func (c *PairCursor[P, S]) Err() error { return c.c.Err() }

// Close ends the traversal and commits any pending pruning. Closing twice is
// a no-op.
func (c *PairCursor[P, S]) Close() error { return c.c.Close() }

// SetCursor traverses one side's (element, slot view) entries. Removing
// through the cursor drops the whole current slot with reciprocal fixup.
type SetCursor[P, S comparable] struct {
	c *dualindex.SlotCursor[P, S]
}

// Next advances to the next entry.
func (c *SetCursor[P, S]) Next() bool { return c.c.Next() }

// Element returns the current element.
func (c *SetCursor[P, S]) Element() (P, error) { return c.c.Primary() }

// Slot returns a live, read-only view of the current element's slot.
func (c *SetCursor[P, S]) Slot() (SetView[P, S], error) {
	view, err := c.c.Slot()
	return SetView[P, S]{view: view}, err
}

// Remove drops the current element's whole slot.
func (c *SetCursor[P, S]) Remove() error { return c.c.Remove() }

// Err returns the first error encountered during traversal, if any.
func (c *SetCursor[P, S]) Err() error { return c.c.Err() }

// SplitCursor is a read-only association cursor supporting parallel
// decomposition. The size estimate is an advisory scheduling hint only.
type SplitCursor[P, S comparable] struct {
	c *dualindex.SplitCursor[P, S]
}

// Next advances to the next association in this cursor's partition.
func (c *SplitCursor[P, S]) Next() bool { return c.c.Next() }

// Pair returns the current association.
func (c *SplitCursor[P, S]) Pair() (P, S, error) { return c.c.Pair() }

// Split carves off roughly half of the remaining traversal into an
// independent cursor, or returns nil when nothing is left to share.
func (c *SplitCursor[P, S]) Split() *SplitCursor[P, S] {
	half := c.c.Split()
	if half == nil {
		return nil
	}
	return &SplitCursor[P, S]{c: half}
}

// EstimateLen returns the advisory number of associations remaining.
func (c *SplitCursor[P, S]) EstimateLen() int { return c.c.EstimateLen() }

// Err returns the first error encountered during traversal, if any.
func (c *SplitCursor[P, S]) Err() error { return c.c.Err() }
