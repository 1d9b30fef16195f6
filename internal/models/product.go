package models

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold marks the stock level below which a product is
// considered low-stock.
const LowStockThreshold = 10

type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
