package product

import (
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
)

type Product struct {
	ID                   uint      `json:"id"`
	Name                 string    `json:"name"`
	Image                string    `json:"image"`
	Brand                string    `json:"brand"`
	Category             string    `json:"category"`
	Description          string    `json:"description"`
	Price                float64   `json:"price"`
	CountInStock         int       `json:"count_in_stock"`
	Rating               float64   `json:"rating"`
	NumReviews           int       `json:"num_reviews"`
	Sold                 int       `json:"sold"`
	WarrantyPeriodMonths int       `json:"warranty_period_months"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	audit.Fields
}

type CreateParams struct {
	Name                 string
	Image                string
	Brand                string
	Category             string
	Description          string
	Price                float64
	CountInStock         int
	WarrantyPeriodMonths int
	ActorID              uint
}

type UpdateParams struct {
	ProductID            uint
	Name                 *string
	Image                *string
	Brand                *string
	Category             *string
	Description          *string
	Price                *float64
	CountInStock         *int
	WarrantyPeriodMonths *int
	ActorID              uint
}

type ListFilter struct {
	Search   *string
	Category *string
	Brand    *string
}

type ListParams struct {
	Filter ListFilter
	Limit  int32
	Page   int32
}
