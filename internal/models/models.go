package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"        json:"id"`
	Name        string    `gorm:"not null"          json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"          json:"price"`
	Category    string    `gorm:"not null;index"    json:"category"`
	Image       string    `json:"image"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Username     string    `gorm:"unique;not null"  json:"username"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Role         string    `gorm:"not null"         json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uuid.UUID `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

// Cart is the per-user server cart row. One cart per user, created lazily
// on the first mutation and never by a plain read. Deleting the owning
// account cascades to the cart and its lines.
type Cart struct {
	ID     uuid.UUID `gorm:"primaryKey"           json:"id"`
	UserID uuid.UUID `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem rows only exist with quantity > 0; a mutation that drives the
// quantity to zero or below deletes the row instead.
type CartItem struct {
	CartID   uuid.UUID `gorm:"primaryKey"                  json:"cart_id"`
	ItemID   uuid.UUID `gorm:"primaryKey"                  json:"item_id"`
	Quantity uint      `gorm:"not null;check:quantity > 0" json:"quantity"`
	Cart     Cart      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
	Item     Product   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
