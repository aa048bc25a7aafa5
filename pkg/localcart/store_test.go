package localcart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/shopcart/internal/cartalgebra"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "cart.json"))
}

func TestStore_ReadAbsentSlot(t *testing.T) {
	s := newTestStore(t)

	cart := s.Read()
	require.NotNil(t, cart)
	assert.Empty(t, cart)
	assert.Zero(t, s.Count())
}

func TestStore_ReadCorruptSlot(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0o600))

	cart := s.Read()
	require.NotNil(t, cart)
	assert.Empty(t, cart)
}

func TestStore_WriteReadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	want := cartalgebra.Cart{"a": 2, "b": 1}
	require.NoError(t, s.Write(want))
	assert.Equal(t, want, s.Read())
	assert.Equal(t, 3, s.Count())
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(cartalgebra.Cart{"a": 2}))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Read())
}

func TestStore_MutationHelpers(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddDelta("a", 2))
	require.NoError(t, s.AddDelta("a", 1))
	require.NoError(t, s.SetQuantity("b", 4))
	assert.Equal(t, cartalgebra.Cart{"a": 3, "b": 4}, s.Read())

	require.NoError(t, s.AddDelta("b", -4))
	require.NoError(t, s.Remove("a"))
	assert.Empty(t, s.Read())

	// removing an absent line is a no-op
	require.NoError(t, s.Remove("a"))
	assert.Empty(t, s.Read())
}
