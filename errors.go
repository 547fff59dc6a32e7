package bimultimap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bimultimap/internal/dualindex"
)

var (
	// ErrNilKey is returned when a nil key is passed to a mutating operation.
	ErrNilKey = errors.New("bimultimap: nil key")

	// ErrNilValue is returned when a nil value is passed to a mutating
	// operation.
	ErrNilValue = errors.New("bimultimap: nil value")
)

// Invalid-state errors. Every one of them matches ErrCorrupted via errors.Is;
// once an operation returns such an error the two indices may have diverged
// and continued use of the structure is unsafe.
var (
	// ErrCorrupted is the root of the invalid-state family.
	ErrCorrupted = dualindex.ErrCorrupted

	// ErrIndexDivergence indicates the key and value indices disagreed
	// during a paired update.
	ErrIndexDivergence = dualindex.ErrDivergence

	// ErrEmptySlot indicates a traversal found a stored empty slot.
	ErrEmptySlot = dualindex.ErrEmptySlot

	// ErrMissingBackReference indicates a reciprocal fixup could not find
	// the back-reference the forward index promised.
	ErrMissingBackReference = dualindex.ErrMissingBackReference
)

var (
	// ErrCursorState is returned when a cursor is read before the first
	// advance, after exhaustion, or asked to remove the same element twice.
	ErrCursorState = dualindex.ErrCursorState

	// ErrUnsupportedMutation is returned when a cursor is asked to replace
	// an association's value in place.
	ErrUnsupportedMutation = dualindex.ErrUnsupportedMutation
)

// asKeyErr translates direction-neutral core errors for an operation whose
// primary element is a key.
func asKeyErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dualindex.ErrNilPrimary):
		return fmt.Errorf("%w: %w", ErrNilKey, err)
	case errors.Is(err, dualindex.ErrNilSecondary):
		return fmt.Errorf("%w: %w", ErrNilValue, err)
	default:
		return err
	}
}

// asValueErr translates direction-neutral core errors for an operation whose
// primary element is a value.
func asValueErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dualindex.ErrNilPrimary):
		return fmt.Errorf("%w: %w", ErrNilValue, err)
	case errors.Is(err, dualindex.ErrNilSecondary):
		return fmt.Errorf("%w: %w", ErrNilKey, err)
	default:
		return err
	}
}
