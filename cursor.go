package ring

import (
	"iter"
)

// ═══════════════════════════════════════════════════════════════════════════════
// CURSOR: Walking the Ring in Both Directions
// ═══════════════════════════════════════════════════════════════════════════════
// A Cursor points at one node of a ring. It never owns the node; it is just
// (ring, slot, generation). Moving it costs one slot lookup.
//
// USAGE PATTERN:
// --------------
// c := r.Any()              // cursor at the anchor
// for range r.Len() {
//     k, _ := c.Key()
//     // process k...
//     c, _ = c.Next()
// }
//
// Because a ring has no end, Next and Prev never run out: after the last node
// comes the anchor again.
//
// INVALID CURSORS:
// ----------------
// The zero Cursor, a cursor taken from an empty ring, a cursor whose node was
// erased and a cursor taken before Clear are all invalid. Key, Next, Prev,
// Advance and Retreat on an invalid cursor return ErrInvalidCursor instead of
// making something up. Insertions and erasures of OTHER nodes leave a cursor
// valid.
// ═══════════════════════════════════════════════════════════════════════════════

// Cursor is a bidirectional position in a Ring
type Cursor[K comparable] struct {
	ring  *Ring[K]
	idx   int32
	gen   uint32
	epoch uint32
}

// Any returns a cursor at the anchor. It is invalid if the ring is empty.
func (r *Ring[K]) Any() Cursor[K] {
	if r.size == 0 {
		return Cursor[K]{}
	}
	return r.cursorAt(r.anchor)
}

func (r *Ring[K]) cursorAt(i int32) Cursor[K] {
	return Cursor[K]{
		ring:  r,
		idx:   i,
		gen:   r.arena.slots[i].gen,
		epoch: r.epoch,
	}
}

// Valid reports whether the cursor references a live node
func (c Cursor[K]) Valid() bool {
	return c.ring != nil &&
		c.epoch == c.ring.epoch &&
		c.ring.arena.isLive(c.idx, c.gen)
}

// Key returns the key stored at the cursor
func (c Cursor[K]) Key() (K, error) {
	if !c.Valid() {
		var zero K
		return zero, ErrInvalidCursor
	}
	return c.ring.arena.slots[c.idx].key, nil
}

// Next returns a cursor at the cyclic successor
func (c Cursor[K]) Next() (Cursor[K], error) {
	if !c.Valid() {
		return Cursor[K]{}, ErrInvalidCursor
	}
	return c.ring.cursorAt(c.ring.arena.slots[c.idx].next), nil
}

// Prev returns a cursor at the cyclic predecessor
func (c Cursor[K]) Prev() (Cursor[K], error) {
	if !c.Valid() {
		return Cursor[K]{}, ErrInvalidCursor
	}
	return c.ring.cursorAt(c.ring.arena.slots[c.idx].prev), nil
}

// Advance moves n steps forward (backward if n is negative).
// Advancing by a multiple of Len() lands on the same node.
func (c Cursor[K]) Advance(n int) (Cursor[K], error) {
	if !c.Valid() {
		return Cursor[K]{}, ErrInvalidCursor
	}

	// Whole cycles are no-ops; take the shorter way round for the rest
	size := c.ring.size
	n %= size
	if n > size/2 {
		n -= size
	} else if n < -size/2 {
		n += size
	}

	slots := c.ring.arena.slots
	i := c.idx
	for ; n > 0; n-- {
		i = slots[i].next
	}
	for ; n < 0; n++ {
		i = slots[i].prev
	}
	return c.ring.cursorAt(i), nil
}

// Retreat moves n steps backward (forward if n is negative)
func (c Cursor[K]) Retreat(n int) (Cursor[K], error) {
	return c.Advance(-n)
}

// Equal reports whether both cursors reference the same node, or are both invalid
func (c Cursor[K]) Equal(other Cursor[K]) bool {
	cv, ov := c.Valid(), other.Valid()
	if !cv || !ov {
		return cv == ov
	}
	return c.ring == other.ring && c.idx == other.idx
}

// ═══════════════════════════════════════════════════════════════════════════════
// RANGE ITERATORS
// ═══════════════════════════════════════════════════════════════════════════════
// All and Backward visit every key exactly once, starting at the anchor:
//
//	for k := range r.All() { ... }       // anchor, next, next, ...
//	for k := range r.Backward() { ... }  // anchor, prev, prev, ...
//
// The ring must not be modified while ranging over it.
// ═══════════════════════════════════════════════════════════════════════════════

// All returns an iterator over one forward cycle from the anchor
func (r *Ring[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		r.walk(func(s *slot[K]) int32 { return s.next }, yield)
	}
}

// Backward returns an iterator over one backward cycle from the anchor
func (r *Ring[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		r.walk(func(s *slot[K]) int32 { return s.prev }, yield)
	}
}

func (r *Ring[K]) walk(step func(*slot[K]) int32, yield func(K) bool) {
	if r.size == 0 {
		return
	}
	i := r.anchor
	for {
		s := &r.arena.slots[i]
		if !yield(s.key) {
			return
		}
		i = step(s)
		if i == r.anchor {
			return
		}
	}
}

// Keys returns the keys in forward order from the anchor
func (r *Ring[K]) Keys() []K {
	keys := make([]K, 0, r.size)
	for k := range r.All() {
		keys = append(keys, k)
	}
	return keys
}
