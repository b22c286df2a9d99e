package cart

import "time"

// Item is one line in a user's cart. Product name, image and price are
// denormalized at add time so the cart renders without catalog joins.
type Item struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is a user's cart with its running items total.
type Cart struct {
	UserID     uint    `json:"user_id"`
	Items      []*Item `json:"items"`
	ItemsTotal float64 `json:"items_total"`
}

type AddParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type UpdateParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type RemoveParams struct {
	UserID    uint
	ProductID uint
}
