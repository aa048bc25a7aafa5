package transport

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IsAdmin      bool   `json:"is_admin"`
}

// AddToCartRequest folds a signed delta into the caller's cart line.
// Delta is a pointer so a missing field is told apart from zero.
type AddToCartRequest struct {
	ItemID uuid.UUID `json:"item_id"`
	Delta  *int      `json:"delta"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// CartLine is the mutation response unit: the resulting (item, quantity)
// pairs of the caller's cart.
type CartLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity uint      `json:"quantity"`
}

// CartLineView joins a cart line with current catalog display data.
type CartLineView struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity uint      `json:"quantity"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Category string    `json:"category"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

// ProductFilter narrows the catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Query    string
}
