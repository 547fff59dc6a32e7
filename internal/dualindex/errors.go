package dualindex

import (
	"errors"
	"fmt"
)

// ErrCorrupted is the root of every invalid-state error produced by this
// package. Once an operation returns an error matching ErrCorrupted the two
// indices may have diverged and continued use of the structure is unsafe.
var ErrCorrupted = errors.New("dualindex: structure corrupted")

var (
	// ErrNilPrimary is returned when a nil primary element is passed to a
	// mutating operation.
	ErrNilPrimary = errors.New("dualindex: nil primary element")

	// ErrNilSecondary is returned when a nil secondary element is passed to a
	// mutating operation.
	ErrNilSecondary = errors.New("dualindex: nil secondary element")

	// ErrDivergence indicates the two indices disagreed during a paired
	// update.
	ErrDivergence = fmt.Errorf("%w: reciprocal indices disagree", ErrCorrupted)

	// ErrEmptySlot indicates a traversal found a stored empty slot. Slots are
	// pruned the moment they empty, so a stored empty slot means an earlier
	// mutation bypassed the paired update path.
	ErrEmptySlot = fmt.Errorf("%w: stored slot is empty", ErrCorrupted)

	// ErrMissingBackReference indicates a reciprocal fixup could not find the
	// back-reference the forward index promised.
	ErrMissingBackReference = fmt.Errorf("%w: missing reciprocal back-reference", ErrCorrupted)

	// ErrCursorState is returned when a cursor is read before the first
	// advance, after exhaustion, or asked to remove the same element twice.
	ErrCursorState = errors.New("dualindex: invalid cursor state")

	// ErrUnsupportedMutation is returned when a cursor is asked to replace an
	// association's secondary element in place. Associations are set members;
	// they have no replaceable value cell.
	ErrUnsupportedMutation = errors.New("dualindex: associations cannot be updated in place")
)
