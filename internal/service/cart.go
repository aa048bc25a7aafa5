package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmalyshev/shopcart/internal/models"
	"github.com/kmalyshev/shopcart/internal/repo"
	"github.com/kmalyshev/shopcart/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func toCartLines(items []models.CartItem) []transport.CartLine {
	lines := make([]transport.CartLine, len(items))
	for i, it := range items {
		lines[i] = transport.CartLine{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return lines
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]transport.CartLineView, error) {
	return s.Repo.GetCartView(ctx, userID)
}

// AddDelta validates before any mutation: the item must reference a real
// catalog product, so a failed call leaves the cart untouched.
func (s *CartService) AddDelta(ctx context.Context, userID, itemID uuid.UUID, delta int) ([]transport.CartLine, error) {
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("item id is required: %w", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Repo.AddCartDelta(ctx, userID, itemID, delta)
	if err != nil {
		return nil, err
	}
	return toCartLines(items), nil
}

func (s *CartService) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) ([]transport.CartLine, error) {
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("item id is required: %w", ErrValidation)
	}

	items, err := s.Repo.SetCartQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return nil, err
	}
	return toCartLines(items), nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return fmt.Errorf("item id is required: %w", ErrValidation)
	}
	return s.Repo.RemoveCartItem(ctx, userID, itemID)
}
