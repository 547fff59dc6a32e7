package dualindex

import (
	"iter"
	"reflect"
)

// slot is the set of secondary elements attached to one primary element. A
// slot is created on first insert and must be pruned from its index the
// moment it empties; it is never stored empty.
type slot[T comparable] map[T]struct{}

func newSlot[T comparable]() slot[T] {
	return make(slot[T])
}

// add inserts x and reports whether it was newly added.
func (s slot[T]) add(x T) bool {
	if _, ok := s[x]; ok {
		return false
	}
	s[x] = struct{}{}
	return true
}

// remove deletes x and reports whether it was present.
func (s slot[T]) remove(x T) bool {
	if _, ok := s[x]; !ok {
		return false
	}
	delete(s, x)
	return true
}

func (s slot[T]) has(x T) bool {
	_, ok := s[x]
	return ok
}

func (s slot[T]) len() int { return len(s) }

// elements returns a snapshot of the slot's contents.
func (s slot[T]) elements() []T {
	out := make([]T, 0, len(s))
	for x := range s {
		out = append(out, x)
	}
	return out
}

// SlotView is a live, read-only view of one primary's slot. It re-resolves
// the slot on every access, so it tracks slot creation and pruning. The zero
// SlotView is a shared empty view.
type SlotView[P, S comparable] struct {
	ix *index[P, S]
	p  P
}

// Contains reports whether x is currently in the slot.
func (v SlotView[P, S]) Contains(x S) bool {
	if v.ix == nil {
		return false
	}
	sl, ok := v.ix.m[v.p]
	return ok && sl.has(x)
}

// Len returns the slot's current size, 0 if the primary is absent.
func (v SlotView[P, S]) Len() int {
	if v.ix == nil {
		return 0
	}
	return v.ix.m[v.p].len()
}

// IsEmpty reports whether the slot is currently empty or absent.
func (v SlotView[P, S]) IsEmpty() bool { return v.Len() == 0 }

// All iterates over the slot's current contents.
func (v SlotView[P, S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		if v.ix == nil {
			return
		}
		for x := range v.ix.m[v.p] {
			if !yield(x) {
				return
			}
		}
	}
}

// Slice returns a snapshot of the slot's current contents.
func (v SlotView[P, S]) Slice() []S {
	if v.ix == nil {
		return nil
	}
	sl, ok := v.ix.m[v.p]
	if !ok {
		return nil
	}
	return sl.elements()
}

// isAbsent reports whether x is the Go rendition of a null/absent element: an
// untyped nil, or a nil value of a nilable kind hiding behind an interface
// type parameter. Zero values of non-nilable types are legitimate elements.
func isAbsent(x any) bool {
	if x == nil {
		return true
	}
	switch rv := reflect.ValueOf(x); rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
