package ring

import (
	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ARENA: Where Ring Nodes Live
// ═══════════════════════════════════════════════════════════════════════════════
// A classic doubly-linked ring wires nodes together with pointers in both
// directions. Every node is then reachable from its neighbour on either side,
// and the whole structure is one big reference cycle.
//
// Instead, every node lives in a slot of a single slice. Links are slot
// indices, not pointers:
//
//	slots:  [0]        [1]        [2]        [3]
//	        key=3      key=1      key=2      (free)
//	        next=1     next=2     next=0     next=-1
//	        prev=2     prev=0     prev=1
//
//	ring order (from anchor 0):  3 -> 1 -> 2 -> back to 3
//
// The arena owns every slot. next and prev are plain lookups, so neither
// direction keeps anything alive, and dropping the arena drops the ring.
//
// FREE LIST:
// ----------
// Erased slots are not removed from the slice. They are chained together
// through their next field and handed out again by the next insertion:
//
//	free -> [3] -> [7] -> -1
//
// GENERATIONS:
// ------------
// Each slot carries a generation counter that is bumped when the slot is
// released. A Cursor remembers the generation it saw, so a cursor pointing at
// a slot that has since been erased (and maybe reused) is detected as stale.
//
// LIVE SET:
// ---------
// A roaring bitmap holds the indices of occupied slots. It answers "is slot i
// in use?" without touching the slot itself, and its cardinality must always
// equal the ring size.
// ═══════════════════════════════════════════════════════════════════════════════

// nilSlot marks an absent link (empty ring anchor, end of the free chain)
const nilSlot int32 = -1

type slot[K comparable] struct {
	key  K
	next int32
	prev int32
	gen  uint32
}

type arena[K comparable] struct {
	slots []slot[K]
	free  int32           // head of the free chain
	live  *roaring.Bitmap // indices of occupied slots
}

func newArena[K comparable](capacity int) arena[K] {
	return arena[K]{
		slots: make([]slot[K], 0, capacity),
		free:  nilSlot,
		live:  roaring.NewBitmap(),
	}
}

// alloc hands out a slot holding key, linked to itself.
// The second return value reports whether the backing slice had to grow.
func (a *arena[K]) alloc(key K) (int32, bool) {
	if a.free != nilSlot {
		i := a.free
		s := &a.slots[i]
		a.free = s.next
		s.key = key
		s.next, s.prev = i, i
		a.live.Add(uint32(i))
		return i, false
	}

	grew := len(a.slots) == cap(a.slots)
	i := int32(len(a.slots))
	a.slots = append(a.slots, slot[K]{key: key, next: i, prev: i})
	a.live.Add(uint32(i))
	return i, grew
}

// release returns slot i to the free chain. The key is zeroed so the arena
// does not hold on to whatever the key references.
func (a *arena[K]) release(i int32) {
	var zero K
	s := &a.slots[i]
	s.key = zero
	s.prev = nilSlot
	s.next = a.free
	s.gen++
	a.free = i
	a.live.Remove(uint32(i))
}

func (a *arena[K]) inRange(i int32) bool {
	return i >= 0 && int(i) < len(a.slots)
}

// isLive reports whether slot i is occupied and still at generation gen
func (a *arena[K]) isLive(i int32, gen uint32) bool {
	if !a.inRange(i) {
		return false
	}
	return a.live.Contains(uint32(i)) && a.slots[i].gen == gen
}

// linkBefore splices the (self-linked) slot n in front of slot at.
//
//	before:  p <-> at
//	after:   p <-> n <-> at
func (a *arena[K]) linkBefore(n, at int32) {
	p := a.slots[at].prev
	a.slots[n].prev = p
	a.slots[n].next = at
	a.slots[p].next = n
	a.slots[at].prev = n
}

// linkAfter splices the (self-linked) slot n behind slot at.
//
//	before:  at <-> s
//	after:   at <-> n <-> s
func (a *arena[K]) linkAfter(n, at int32) {
	a.linkBefore(n, a.slots[at].next)
}

// unlink bypasses slot i: its predecessor and successor now point at each other.
// The slot itself is left untouched; call release to recycle it.
func (a *arena[K]) unlink(i int32) {
	s := a.slots[i]
	a.slots[s.prev].next = s.next
	a.slots[s.next].prev = s.prev
}

// reset drops every slot. Capacity is kept for reuse.
func (a *arena[K]) reset() {
	clear(a.slots)
	a.slots = a.slots[:0]
	a.free = nilSlot
	a.live.Clear()
}
