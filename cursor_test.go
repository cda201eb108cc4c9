package ring

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ZeroValueIsInvalid(t *testing.T) {
	var c Cursor[int]

	assert.False(t, c.Valid())

	_, err := c.Key()
	assert.ErrorIs(t, err, ErrInvalidCursor)
	_, err = c.Next()
	assert.ErrorIs(t, err, ErrInvalidCursor)
	_, err = c.Prev()
	assert.ErrorIs(t, err, ErrInvalidCursor)
	_, err = c.Advance(3)
	assert.ErrorIs(t, err, ErrInvalidCursor)
	_, err = c.Retreat(3)
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestCursor_AnyOnEmptyRing(t *testing.T) {
	r := New[string]()
	c := r.Any()

	assert.False(t, c.Valid())
	assert.True(t, c.Equal(Cursor[string]{}), "both invalid cursors should be equal")

	_, err := c.Key()
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestCursor_ForwardAndBackward(t *testing.T) {
	r := From([]int{10, 20, 30})
	c := r.Any()

	var forward []int
	for range 2 * r.Len() {
		k, err := c.Key()
		require.NoError(t, err)
		forward = append(forward, k)
		c, err = c.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{10, 20, 30, 10, 20, 30}, forward)

	var backward []int
	for range 4 {
		k, err := c.Key()
		require.NoError(t, err)
		backward = append(backward, k)
		c, err = c.Prev()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{10, 30, 20, 10}, backward)
}

func TestCursor_Advance(t *testing.T) {
	r := From([]string{"a", "b", "c", "d"})
	start := r.Any()

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"zero", 0, "a"},
		{"one", 1, "b"},
		{"full cycle", 4, "a"},
		{"two cycles plus one", 9, "b"},
		{"negative", -1, "d"},
		{"negative full cycle", -8, "a"},
		{"shorter way back", 3, "d"},
		{"many cycles", 1<<30 + 1, "b"},
		{"many cycles backward", -(1 << 30) - 1, "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := start.Advance(tt.n)
			require.NoError(t, err)
			k, err := c.Key()
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)

			back, err := c.Retreat(tt.n)
			require.NoError(t, err)
			assert.True(t, back.Equal(start), "Retreat(n) should undo Advance(n)")
		})
	}
}

func TestCursor_Equal(t *testing.T) {
	a := From([]int{1, 2})
	b := From([]int{1, 2})

	c1 := a.Any()
	c2, err := c1.Advance(2)
	require.NoError(t, err)

	assert.True(t, c1.Equal(c2), "same node reached two ways")
	assert.False(t, c1.Equal(b.Any()), "same key in a different ring")

	n, err := c1.Next()
	require.NoError(t, err)
	assert.False(t, c1.Equal(n))
	assert.False(t, c1.Equal(Cursor[int]{}))
}

func TestCursor_StaleAfterErase(t *testing.T) {
	r := From([]int{1, 2, 3})
	c, err := r.Any().Next() // at 2
	require.NoError(t, err)

	require.True(t, r.Erase(2))
	assert.False(t, c.Valid())
	_, err = c.Key()
	assert.True(t, errors.Is(err, ErrInvalidCursor))

	// the freed slot is reused, the old cursor must stay stale
	r.Append(4, Back)
	assert.False(t, c.Valid())
}

func TestCursor_StaleAfterClear(t *testing.T) {
	r := From([]int{1, 2, 3})
	c := r.Any()

	r.Clear()
	r.Append(1, Back)

	assert.False(t, c.Valid(), "cursor from before Clear must be invalid")
	assert.True(t, r.Any().Valid())
}

func TestCursor_SurvivesOtherMutations(t *testing.T) {
	r := From([]int{1, 2, 3})
	c, err := r.Any().Advance(2) // at 3
	require.NoError(t, err)

	r.Append(0, Front)
	require.NoError(t, r.InsertAfter(9, 1, 1))
	require.True(t, r.Erase(2))

	k, err := c.Key()
	require.NoError(t, err)
	assert.Equal(t, 3, k)

	n, err := c.Next()
	require.NoError(t, err)
	k, err = n.Key()
	require.NoError(t, err)
	assert.Equal(t, 0, k, "successor of the last node is the anchor")
}

func TestRing_AllAndBackward(t *testing.T) {
	r := From([]string{"a", "b", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(r.All()))
	assert.Equal(t, []string{"a", "c", "b"}, slices.Collect(r.Backward()))
	assert.Empty(t, slices.Collect(New[string]().All()))

	// early break
	var first []string
	for k := range r.All() {
		first = append(first, k)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, first)
}

// ═══════════════════════════════════════════════════════════════════════════════
// PROPERTY TESTS
// ═══════════════════════════════════════════════════════════════════════════════
// A fixed pseudo-random sequence of operations is applied to a ring and to a
// plain slice model. After every step the ring must match the model and pass
// Check (single cycle, mirrored back-links, live anchor).
// ═══════════════════════════════════════════════════════════════════════════════

func TestRing_MatchesSliceModel(t *testing.T) {
	r := New[int]()
	var model []int

	// linear congruential generator: deterministic, no seeding concerns
	seed := uint32(42)
	rnd := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}

	for step := 0; step < 2000; step++ {
		key := rnd(8)
		switch op := rnd(5); op {
		case 0:
			r.Append(key, Back)
			model = append(model, key)
		case 1:
			r.Append(key, Front)
			model = append([]int{key}, model...)
		case 2:
			found := r.Erase(key)
			i := slices.Index(model, key)
			require.Equal(t, i >= 0, found, "step %d: Erase(%d)", step, key)
			if i >= 0 {
				model = slices.Delete(model, i, i+1)
			}
		case 3:
			target := rnd(8)
			err := r.InsertAfter(key, target, 1)
			i := slices.Index(model, target)
			if i < 0 {
				require.Error(t, err, "step %d", step)
			} else {
				require.NoError(t, err, "step %d", step)
				model = slices.Insert(model, i+1, key)
			}
		case 4:
			target := rnd(8)
			err := r.InsertAt(key, target, 1)
			i := slices.Index(model, target)
			if i < 0 {
				require.Error(t, err, "step %d", step)
			} else {
				require.NoError(t, err, "step %d", step)
				model = slices.Insert(model, i, key)
			}
		}

		require.NoError(t, r.Check(), "step %d", step)
		require.Equal(t, len(model), r.Len(), "step %d", step)
		if len(model) == 0 {
			require.True(t, r.IsEmpty())
			continue
		}
		require.Equal(t, model, r.Keys(), "step %d", step)
	}
}

func TestRing_CycleProperty(t *testing.T) {
	r := From([]int{5, 4, 3, 2, 1})
	c := r.Any()

	for range r.Len() {
		forward, err := c.Advance(r.Len())
		require.NoError(t, err)
		assert.True(t, forward.Equal(c))

		backward, err := c.Retreat(r.Len())
		require.NoError(t, err)
		assert.True(t, backward.Equal(c))

		next, err := c.Next()
		require.NoError(t, err)
		prevOfNext, err := next.Prev()
		require.NoError(t, err)
		assert.True(t, prevOfNext.Equal(c), "n.next.prev == n")

		c = next
	}
}

func TestRing_CopyIndependence(t *testing.T) {
	a := From([]int{1, 2, 2, 3})
	b := New[int]()
	b.CopyFrom(a)

	require.True(t, a.Erase(2))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []int{1, 2, 2, 3}, b.Keys())

	b.Append(8, Front)
	assert.Equal(t, []int{1, 2, 3}, a.Keys())
}

func BenchmarkCursor_Next(b *testing.B) {
	r := From([]int{1, 2, 3, 4, 5, 6, 7, 8})
	c := r.Any()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, _ = c.Next()
	}
}
