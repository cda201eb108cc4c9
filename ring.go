// Package ring implements a generic circular doubly-linked list ("ring")
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS A RING?
// ═══════════════════════════════════════════════════════════════════════════════
// A ring is a doubly-linked list whose last node links back to its first node.
// There is no head or tail, only a distinguished ANCHOR where traversal starts:
//
//	        anchor
//	          │
//	          ▼
//	    ┌──▶ [3] ──▶ [1] ──▶ [2] ──┐
//	    │                          │
//	    └──────────────────────────┘
//	    (and the same cycle backwards through prev)
//
// Walking next from any node exactly Len() times returns to that node.
//
// WHAT CAN YOU DO WITH IT?
// ------------------------
// - Append at the FRONT (new anchor) or BACK (just before the anchor)
// - Insert after / before the Nth occurrence of a key
// - Erase the first occurrence of a key
// - Walk forwards and backwards forever with a Cursor
//
// Typical uses: round-robin schedulers, rotating token buffers, anything that
// needs "what comes after the last one? the first one again".
//
// Keys only need ==. Duplicates are allowed and are told apart by their
// OCCURRENCE INDEX: the 1-based count of matches met walking forward from the
// anchor.
//
// A Ring is not safe for concurrent use. Serialize access externally.
// ═══════════════════════════════════════════════════════════════════════════════
package ring

import (
	"errors"
	"fmt"
	"log/slog"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
var (
	ErrEmptyRing         = errors.New("ring is empty")
	ErrNotFound          = errors.New("key not found")
	ErrInvalidOccurrence = errors.New("occurrence index must be at least 1")
	ErrInvalidCursor     = errors.New("cursor does not reference a live node")
	ErrCorrupt           = errors.New("ring invariant violated")
)

// Where selects which end Append inserts at
type Where int

const (
	// Front inserts before the anchor and makes the new key the anchor
	Front Where = iota
	// Back inserts before the anchor and leaves the anchor alone
	Back
)

func (w Where) String() string {
	switch w {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return fmt.Sprintf("Where(%d)", int(w))
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// OPTIONS
// ═══════════════════════════════════════════════════════════════════════════════

type options struct {
	logger   *slog.Logger
	capacity int
}

// Option configures a Ring
type Option func(*options)

// WithLogger sets the logger used for debug diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCapacity pre-sizes the node arena for n keys
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// RING: The Main Data Structure
// ═══════════════════════════════════════════════════════════════════════════════

// Ring is a circular doubly-linked list of keys. The zero value is an empty
// ring ready to use.
//
// A Ring must not be copied by value: the copy shares its nodes with the
// original. Use Clone or CopyFrom for an independent copy.
type Ring[K comparable] struct {
	arena  arena[K]
	anchor int32  // slot of the traversal start, nilSlot when empty
	size   int    // number of nodes in the cycle
	epoch  uint32 // bumped by Clear so older cursors go stale
	logger *slog.Logger
}

// New creates an empty ring
func New[K comparable](opts ...Option) *Ring[K] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Ring[K]{
		arena:  newArena[K](o.capacity),
		anchor: nilSlot,
		logger: o.logger,
	}
}

// From creates a ring holding keys in order, the first key being the anchor
func From[K comparable](keys []K, opts ...Option) *Ring[K] {
	r := New[K](append([]Option{WithCapacity(len(keys))}, opts...)...)
	for _, k := range keys {
		r.Append(k, Back)
	}
	return r
}

// lazyInit sets up a zero Ring value on its first write
func (r *Ring[K]) lazyInit() {
	if r.arena.live == nil {
		r.arena = newArena[K](0)
		r.anchor = nilSlot
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
}

// Len returns the number of keys in the ring
func (r *Ring[K]) Len() int { return r.size }

// IsEmpty reports whether the ring holds no keys
func (r *Ring[K]) IsEmpty() bool { return r.size == 0 }

// ═══════════════════════════════════════════════════════════════════════════════
// APPEND: Insertion at Either End
// ═══════════════════════════════════════════════════════════════════════════════
// Both ends of a ring are the same place: the gap just before the anchor.
// FRONT and BACK only differ in who is the anchor afterwards.
//
// EXAMPLE:
// --------
// Start:            anchor=[1] -> [2]
// Append(3, Back):  anchor=[1] -> [2] -> [3]      (3 is visited last)
// Append(0, Front): anchor=[0] -> [1] -> [2] -> [3] (0 is visited first)
//
// On an empty ring the new node links to itself and becomes the anchor.
// ═══════════════════════════════════════════════════════════════════════════════

// Append inserts key at the front or back of the ring
func (r *Ring[K]) Append(key K, where Where) {
	n := r.alloc(key)
	r.size++

	if r.anchor == nilSlot {
		r.anchor = n
		return
	}

	r.arena.linkBefore(n, r.anchor)
	if where == Front {
		r.anchor = n
	}
}

// PushFront is Append(key, Front)
func (r *Ring[K]) PushFront(key K) { r.Append(key, Front) }

// PushBack is Append(key, Back)
func (r *Ring[K]) PushBack(key K) { r.Append(key, Back) }

// ═══════════════════════════════════════════════════════════════════════════════
// POSITIONAL INSERT: Relative to the Nth Occurrence of a Key
// ═══════════════════════════════════════════════════════════════════════════════
// Both operations share one scan: walk forward from the anchor, counting the
// nodes whose key equals target, and stop at match number `which`.
//
// EXAMPLE (ring: a b a c, target a):
// ----------------------------------
// which=1 → the first "a" (the anchor)
// which=2 → the second "a"
// which=3 → not found: the ring is left untouched and ErrNotFound returned
//
// InsertAfter(x, a, 2):  a b a x c
// InsertAt(x, a, 2):     a b x a c
// InsertAt(x, a, 1):     x a b a c   (x took the anchor's place)
// ═══════════════════════════════════════════════════════════════════════════════

// InsertAfter inserts key right after the which-th occurrence of target
func (r *Ring[K]) InsertAfter(key, target K, which int) error {
	at, err := r.locate(target, which)
	if err != nil {
		return err
	}

	n := r.alloc(key)
	r.arena.linkAfter(n, at)
	r.size++
	return nil
}

// InsertAt inserts key right before the which-th occurrence of target.
// When that occurrence is the anchor, the new key becomes the anchor.
func (r *Ring[K]) InsertAt(key, target K, which int) error {
	at, err := r.locate(target, which)
	if err != nil {
		return err
	}

	n := r.alloc(key)
	r.arena.linkBefore(n, at)
	if at == r.anchor {
		r.anchor = n
	}
	r.size++
	return nil
}

// locate returns the slot of the which-th forward occurrence of target
func (r *Ring[K]) locate(target K, which int) (int32, error) {
	if r.size == 0 {
		return nilSlot, ErrEmptyRing
	}
	if which < 1 {
		return nilSlot, fmt.Errorf("%w: got %d", ErrInvalidOccurrence, which)
	}

	seen := 0
	i := r.anchor
	for {
		if r.arena.slots[i].key == target {
			seen++
			if seen == which {
				return i, nil
			}
		}
		i = r.arena.slots[i].next
		if i == r.anchor {
			break
		}
	}

	return nilSlot, fmt.Errorf("occurrence %d of %v (found %d): %w", which, target, seen, ErrNotFound)
}

// indexOf returns the slot of the first forward occurrence of key, or nilSlot
func (r *Ring[K]) indexOf(key K) int32 {
	if r.size == 0 {
		return nilSlot
	}
	i := r.anchor
	for {
		if r.arena.slots[i].key == key {
			return i
		}
		i = r.arena.slots[i].next
		if i == r.anchor {
			return nilSlot
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// ERASE: Removing Keys
// ═══════════════════════════════════════════════════════════════════════════════
// Three cases:
//
//  1. Only one node and it matches: the ring becomes empty.
//  2. The anchor matches: bypass it, the anchor moves to its successor.
//  3. Any other node matches: bypass it, the anchor stays.
//
// Bypassing node [b]:
//
//	before:  [a] <-> [b] <-> [c]
//	after:   [a] <-> [c]          ([b] goes back to the arena free list)
// ═══════════════════════════════════════════════════════════════════════════════

// Erase removes the first occurrence of key and reports whether one was found
func (r *Ring[K]) Erase(key K) bool {
	i := r.indexOf(key)
	if i == nilSlot {
		return false
	}
	r.remove(i)
	return true
}

// EraseAll removes every occurrence of key and returns how many were removed
func (r *Ring[K]) EraseAll(key K) int {
	removed := 0
	i := r.anchor
	for n := r.size; n > 0; n-- {
		next := r.arena.slots[i].next
		if r.arena.slots[i].key == key {
			r.remove(i)
			removed++
		}
		i = next
	}
	return removed
}

func (r *Ring[K]) remove(i int32) {
	switch {
	case r.size == 1:
		r.anchor = nilSlot
	case i == r.anchor:
		r.anchor = r.arena.slots[i].next
		r.arena.unlink(i)
	default:
		r.arena.unlink(i)
	}

	r.arena.release(i)
	r.size--
}

// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH
// ═══════════════════════════════════════════════════════════════════════════════

// Contains reports whether key occurs anywhere in the ring
func (r *Ring[K]) Contains(key K) bool {
	return r.indexOf(key) != nilSlot
}

// Count returns the number of occurrences of key
func (r *Ring[K]) Count(key K) int {
	count := 0
	for k := range r.All() {
		if k == key {
			count++
		}
	}
	return count
}

// ═══════════════════════════════════════════════════════════════════════════════
// CLEAR AND COPY
// ═══════════════════════════════════════════════════════════════════════════════

// Clear removes every key. Cursors obtained before the call become invalid.
func (r *Ring[K]) Clear() {
	r.lazyInit()
	r.logger.Debug("clearing ring", slog.Int("size", r.size))

	r.arena.reset()
	r.anchor = nilSlot
	r.size = 0
	r.epoch++
}

// Clone returns a deep copy: new nodes, same keys, same order from the anchor
func (r *Ring[K]) Clone() *Ring[K] {
	c := New[K](WithLogger(r.logger), WithCapacity(r.size))
	c.appendFrom(r)
	return c
}

// CopyFrom replaces the contents of r with a deep copy of src.
// Copying a ring onto itself does nothing.
func (r *Ring[K]) CopyFrom(src *Ring[K]) {
	if src == r {
		return
	}
	r.Clear()
	if src != nil {
		r.appendFrom(src)
	}
}

func (r *Ring[K]) appendFrom(src *Ring[K]) {
	r.logger.Debug("copying ring", slog.Int("size", src.size))
	for k := range src.All() {
		r.Append(k, Back)
	}
}

func (r *Ring[K]) alloc(key K) int32 {
	r.lazyInit()
	i, grew := r.arena.alloc(key)
	if grew {
		r.logger.Debug("ring arena grew",
			slog.Int("slots", len(r.arena.slots)),
			slog.Int("capacity", cap(r.arena.slots)))
	}
	return i
}

// ═══════════════════════════════════════════════════════════════════════════════
// INVARIANT CHECK
// ═══════════════════════════════════════════════════════════════════════════════
// Check walks the ring in both directions and verifies:
//
//  1. empty ring ⇔ no anchor ⇔ no live slots
//  2. next from the anchor comes back after exactly Len() steps (one cycle)
//  3. for every node n: n.next.prev == n
//  4. the anchor is a live member of the cycle
//
// It is meant for tests and debugging; every operation keeps these true.
// ═══════════════════════════════════════════════════════════════════════════════

// Check verifies the structural invariants of the ring
func (r *Ring[K]) Check() error {
	if r.arena.live == nil {
		// Zero value, never written to
		if r.size != 0 || len(r.arena.slots) != 0 {
			return fmt.Errorf("%w: uninitialised ring has size %d", ErrCorrupt, r.size)
		}
		return nil
	}

	live := r.arena.live.GetCardinality()

	if r.size == 0 {
		if r.anchor != nilSlot {
			return fmt.Errorf("%w: empty ring has anchor %d", ErrCorrupt, r.anchor)
		}
		if live != 0 {
			return fmt.Errorf("%w: empty ring has %d live slots", ErrCorrupt, live)
		}
		return nil
	}

	if r.anchor == nilSlot || !r.arena.live.Contains(uint32(r.anchor)) {
		return fmt.Errorf("%w: anchor %d is not a live slot", ErrCorrupt, r.anchor)
	}
	if live != uint64(r.size) {
		return fmt.Errorf("%w: size %d but %d live slots", ErrCorrupt, r.size, live)
	}

	slots := r.arena.slots

	// Forward: one cycle of exactly size steps, mirrored back-links
	i := r.anchor
	for step := 1; step <= r.size; step++ {
		if !r.arena.live.Contains(uint32(i)) {
			return fmt.Errorf("%w: slot %d reached by next is not live", ErrCorrupt, i)
		}
		next := slots[i].next
		if !r.arena.inRange(next) {
			return fmt.Errorf("%w: slot %d has dangling next %d", ErrCorrupt, i, next)
		}
		if slots[next].prev != i {
			return fmt.Errorf("%w: slot %d next=%d but %d.prev=%d", ErrCorrupt, i, next, next, slots[next].prev)
		}
		i = next
		if i == r.anchor && step < r.size {
			return fmt.Errorf("%w: forward cycle closes after %d of %d steps", ErrCorrupt, step, r.size)
		}
	}
	if i != r.anchor {
		return fmt.Errorf("%w: forward cycle longer than %d", ErrCorrupt, r.size)
	}

	// Backward: the same cycle through prev
	for step := 1; step <= r.size; step++ {
		prev := slots[i].prev
		if !r.arena.inRange(prev) {
			return fmt.Errorf("%w: slot %d has dangling prev %d", ErrCorrupt, i, prev)
		}
		i = prev
		if i == r.anchor && step < r.size {
			return fmt.Errorf("%w: backward cycle closes after %d of %d steps", ErrCorrupt, step, r.size)
		}
	}
	if i != r.anchor {
		return fmt.Errorf("%w: backward cycle longer than %d", ErrCorrupt, r.size)
	}

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// RING SUMMARY
// ═══════════════════════════════════════════════════════════════════════════════
//
// OPERATIONS:
// -----------
// - Append / PushFront / PushBack        → O(1)
// - InsertAfter / InsertAt (nth match)   → O(n)
// - Erase (first match) / EraseAll       → O(n)
// - Contains / Count                     → O(n)
// - Len / IsEmpty                        → O(1)
// - Clear                                → O(capacity)
// - Clone / CopyFrom                     → O(n)
// - Cursor Next / Prev                   → O(1), Advance(k) O(k)
//
// FAILURE MODES:
// --------------
// - ErrEmptyRing, ErrNotFound, ErrInvalidOccurrence from positional inserts
// - false from Erase when nothing matched
// - ErrInvalidCursor from any use of a stale or zero cursor
//
// ═══════════════════════════════════════════════════════════════════════════════
