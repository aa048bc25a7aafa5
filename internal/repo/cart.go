package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kmalyshev/shopcart/internal/models"
	"github.com/kmalyshev/shopcart/internal/transport"
)

// getOrCreateCart resolves the caller's cart row, creating it on first
// reference. The insert is ON CONFLICT DO NOTHING on user_id, so two
// concurrent first mutations cannot produce a duplicate row.
func getOrCreateCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{ID: uuid.New(), UserID: userID}
	if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// findCart is the read-only variant: a missing cart is reported as
// gorm.ErrRecordNotFound and no row is created.
func findCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartLines(tx *gorm.DB, cartID uuid.UUID) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := tx.Where("cart_id = ?", cartID).Order("item_id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// GetCartView returns the caller's lines joined with current catalog
// display data. A user with no cart row gets an empty result and no row
// is created as a side effect.
func (r *GormRepo) GetCartView(ctx context.Context, userID uuid.UUID) ([]transport.CartLineView, error) {
	views := make([]transport.CartLineView, 0)

	cart, err := findCart(r.DB.WithContext(ctx), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return views, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.item_id, cart_items.quantity, products.name, products.price, products.category").
		Joins("JOIN products ON products.id = cart_items.item_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Order("cart_items.item_id").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// AddCartDelta folds a signed delta into the (cart, item) row. Positive
// deltas go through a single additive upsert, so two concurrent adds for
// the same item both land. A result <= 0 removes the row.
func (r *GormRepo) AddCartDelta(ctx context.Context, userID, itemID uuid.UUID, delta int) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		if delta > 0 {
			line := models.CartItem{CartID: cart.ID, ItemID: itemID, Quantity: uint(delta)}
			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
				}),
			}).Create(&line).Error; err != nil {
				return err
			}
		} else {
			// Decrement keeps the row only while the result stays positive;
			// otherwise the row is deleted (deleting an absent row is a no-op).
			res := tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND item_id = ? AND quantity + ? > 0", cart.ID, itemID, delta).
				Update("quantity", gorm.Expr("quantity + ?", delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
					Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			}
		}

		lines, err = cartLines(tx, cart.ID)
		return err
	})
	return lines, err
}

// SetCartQuantity sets the (cart, item) row to exactly qty. A qty <= 0
// deletes the row; no cart row is created just to record a deletion.
func (r *GormRepo) SetCartQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if qty <= 0 {
			cart, err := findCart(tx, userID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				lines = []models.CartItem{}
				return nil
			}
			if err != nil {
				return err
			}
			if err := tx.Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			lines, err = cartLines(tx, cart.ID)
			return err
		}

		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		line := models.CartItem{CartID: cart.ID, ItemID: itemID, Quantity: uint(qty)}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": qty}),
		}).Create(&line).Error; err != nil {
			return err
		}
		lines, err = cartLines(tx, cart.ID)
		return err
	})
	return lines, err
}

// RemoveCartItem unconditionally deletes the (cart, item) row. Idempotent:
// a missing cart or line is not an error.
func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := findCart(r.DB.WithContext(ctx), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		Delete(&models.CartItem{}).Error
}
