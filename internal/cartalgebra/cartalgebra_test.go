package cartalgebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDelta_NeverKeepsNonPositiveLines(t *testing.T) {
	t.Parallel()

	type op struct {
		itemID string
		delta  int
	}
	sequences := [][]op{
		{{"a", 3}, {"a", -3}},
		{{"a", 1}, {"a", -5}},
		{{"a", -1}},
		{{"a", 2}, {"b", 1}, {"a", -1}, {"b", -4}, {"a", -1}},
		{{"a", 0}},
	}

	for _, seq := range sequences {
		cart := Cart{}
		for _, o := range seq {
			cart = AddDelta(cart, o.itemID, o.delta)
		}
		for id, qty := range cart {
			assert.Greater(t, qty, 0, "line %s", id)
		}
	}
}

func TestAddDelta_Composes(t *testing.T) {
	t.Parallel()

	cases := []struct{ d1, d2 int }{
		{1, 1}, {2, 3}, {5, -2}, {-1, 4}, {3, -3}, {-2, -2},
	}
	for _, tc := range cases {
		base := Cart{"x": 10}
		stepped := AddDelta(AddDelta(base, "x", tc.d1), "x", tc.d2)
		direct := AddDelta(base, "x", tc.d1+tc.d2)
		assert.Equal(t, direct, stepped, "d1=%d d2=%d", tc.d1, tc.d2)
	}
}

func TestAddDelta_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	cart := Cart{"a": 1}
	_ = AddDelta(cart, "a", 5)
	_ = SetQuantity(cart, "a", 9)
	_ = Remove(cart, "a")
	assert.Equal(t, Cart{"a": 1}, cart)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	cart := SetQuantity(Cart{}, "a", 4)
	require.Equal(t, Cart{"a": 4}, cart)

	// idempotent
	assert.Equal(t, cart, SetQuantity(cart, "a", 4))

	// absolute, not additive
	assert.Equal(t, Cart{"a": 2}, SetQuantity(cart, "a", 2))

	// zero and negative remove the line
	assert.Empty(t, SetQuantity(cart, "a", 0))
	assert.Empty(t, SetQuantity(cart, "a", -3))
}

func TestRemove_IdempotentAndCommutes(t *testing.T) {
	t.Parallel()

	cart := Cart{"a": 2, "b": 1}

	once := Remove(cart, "a")
	twice := Remove(once, "a")
	assert.Equal(t, once, twice)

	ab := Remove(Remove(cart, "a"), "b")
	ba := Remove(Remove(cart, "b"), "a")
	assert.Equal(t, ab, ba)

	// absent line is not an error
	assert.Equal(t, cart, Remove(cart, "missing"))
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Count(Cart{}))
	assert.Equal(t, 6, Count(Cart{"a": 2, "b": 1, "c": 3}))
}
