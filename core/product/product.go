package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Available   bool            `json:"available" db:"available"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
	Version     int             `json:"-" db:"version"`
}

type ProductNew struct {
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug" validate:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price"`
}
