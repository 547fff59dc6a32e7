package dualindex

// index is one directional mapping from primary elements to slots of
// secondary elements. All slot lifecycle management (create on first insert,
// prune on last remove) goes through the helpers below so every mutation
// path shares the same behavior.
type index[P, S comparable] struct {
	m map[P]slot[S]
	// baseCap is the configured initial capacity, retained so Clear can
	// rebuild the map with the same sizing hint.
	baseCap int
}

// getOrCreate returns the slot for p, creating it if absent. Callers must
// insert into the returned slot before the operation completes, or prune it,
// so that no empty slot is ever left stored.
func (ix *index[P, S]) getOrCreate(p P) slot[S] {
	sl, ok := ix.m[p]
	if !ok {
		sl = newSlot[S]()
		ix.m[p] = sl
	}
	return sl
}

// removeFrom deletes s from p's slot, pruning the slot if it empties.
// Reports whether the element was present.
func (ix *index[P, S]) removeFrom(p P, s S) bool {
	sl, ok := ix.m[p]
	if !ok || !sl.remove(s) {
		return false
	}
	if sl.len() == 0 {
		delete(ix.m, p)
	}
	return true
}

func (ix *index[P, S]) contains(p P) bool {
	_, ok := ix.m[p]
	return ok
}

func (ix *index[P, S]) len() int { return len(ix.m) }

// primaries returns a snapshot of the index's primary elements.
func (ix *index[P, S]) primaries() []P {
	out := make([]P, 0, len(ix.m))
	for p := range ix.m {
		out = append(out, p)
	}
	return out
}

func (ix *index[P, S]) reset() {
	ix.m = make(map[P]slot[S], ix.baseCap)
}
