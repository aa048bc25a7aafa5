package localcart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmalyshev/shopcart/internal/cartalgebra"
)

// fakeServerCart is a map-backed ServerCart that can be told to fail after
// a number of successful adds.
type fakeServerCart struct {
	lines     map[string]int
	failAfter int
	adds      int
}

func newFakeServerCart(lines map[string]int) *fakeServerCart {
	if lines == nil {
		lines = map[string]int{}
	}
	return &fakeServerCart{lines: lines, failAfter: -1}
}

func (f *fakeServerCart) AddDelta(_ context.Context, itemID string, delta int) error {
	if f.failAfter >= 0 && f.adds >= f.failAfter {
		return errors.New("server unavailable")
	}
	f.adds++
	next := f.lines[itemID] + delta
	if next <= 0 {
		delete(f.lines, itemID)
		return nil
	}
	f.lines[itemID] = next
	return nil
}

func (f *fakeServerCart) Lines(context.Context) (map[string]int, error) {
	if f.failAfter >= 0 && f.adds >= f.failAfter {
		return nil, errors.New("server unavailable")
	}
	out := make(map[string]int, len(f.lines))
	for k, v := range f.lines {
		out[k] = v
	}
	return out, nil
}

func TestMerger_EmptyServer(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(cartalgebra.Cart{"a": 2, "b": 1}))
	server := newFakeServerCart(nil)
	m := NewMerger(store, server)

	require.NoError(t, m.Merge(context.Background()))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, server.lines)
	assert.Equal(t, cartalgebra.Cart{"a": 2, "b": 1}, store.Read())
}

func TestMerger_CombinesWithExistingServerCart(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(cartalgebra.Cart{"a": 2}))
	server := newFakeServerCart(map[string]int{"a": 3, "c": 1})
	m := NewMerger(store, server)

	require.NoError(t, m.Merge(context.Background()))

	assert.Equal(t, map[string]int{"a": 5, "c": 1}, server.lines)
	assert.Equal(t, cartalgebra.Cart{"a": 5, "c": 1}, store.Read())
}

func TestMerger_EmptyLocalMirrorsServer(t *testing.T) {
	store := newTestStore(t)
	server := newFakeServerCart(map[string]int{"c": 4})
	m := NewMerger(store, server)

	require.NoError(t, m.Merge(context.Background()))

	assert.Equal(t, cartalgebra.Cart{"c": 4}, store.Read())
}

func TestMerger_FailureKeepsLocalAndStaysAnonymous(t *testing.T) {
	store := newTestStore(t)
	local := cartalgebra.Cart{"a": 2, "b": 1}
	require.NoError(t, store.Write(local))
	server := newFakeServerCart(nil)
	server.failAfter = 0
	m := NewMerger(store, server)

	err := m.Merge(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, local, store.Read())
	assert.Empty(t, server.lines)
}

func TestMerger_FetchFailureKeepsLocal(t *testing.T) {
	store := newTestStore(t)
	local := cartalgebra.Cart{"a": 2}
	require.NoError(t, store.Write(local))
	server := newFakeServerCart(nil)
	server.failAfter = 1
	m := NewMerger(store, server)

	err := m.Merge(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, local, store.Read())
}

func TestMerger_AlreadyAuthenticatedIsNoOp(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(cartalgebra.Cart{"a": 2}))
	server := newFakeServerCart(nil)
	m := NewMerger(store, server)

	require.NoError(t, m.Merge(context.Background()))
	require.Equal(t, StateAuthenticated, m.State())
	addsAfterFirst := server.adds

	require.NoError(t, m.Merge(context.Background()))
	assert.Equal(t, addsAfterFirst, server.adds, "second merge must not touch the server")
}
