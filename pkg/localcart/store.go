// Package localcart is the device-local cart: one named file slot holding
// the itemID->quantity mapping of an anonymous session, plus the merge
// protocol that folds it into the server cart on login.
package localcart

import (
	"encoding/json"
	"os"

	"github.com/kmalyshev/shopcart/internal/cartalgebra"
)

// Cart is the itemID->quantity mapping, re-exported so callers outside the
// module can name what Read returns.
type Cart = cartalgebra.Cart

// Store persists the local cart in a single JSON slot. Writes replace the
// whole mapping; concurrent writers are last-writer-wins.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the persisted cart. An absent or corrupt slot reads as an
// empty cart; corruption is swallowed, never surfaced.
func (s *Store) Read() cartalgebra.Cart {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return cartalgebra.Cart{}
	}
	var cart cartalgebra.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return cartalgebra.Cart{}
	}
	if cart == nil {
		cart = cartalgebra.Cart{}
	}
	return cart
}

func (s *Store) Write(cart cartalgebra.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) Count() int {
	return cartalgebra.Count(s.Read())
}

func (s *Store) Clear() error {
	return s.Write(cartalgebra.Cart{})
}

// The mutation helpers are read-apply-write; the read-modify-write is not
// atomic across concurrent writers.

func (s *Store) AddDelta(itemID string, delta int) error {
	return s.Write(cartalgebra.AddDelta(s.Read(), itemID, delta))
}

func (s *Store) SetQuantity(itemID string, qty int) error {
	return s.Write(cartalgebra.SetQuantity(s.Read(), itemID, qty))
}

func (s *Store) Remove(itemID string) error {
	return s.Write(cartalgebra.Remove(s.Read(), itemID))
}
