package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerFilter holds optional substring filters for customer listings.
// Matching is case-insensitive "contains" on the full name and email.
type CustomerFilter struct {
	NameContains  string `json:"nameContains,omitempty"`
	EmailContains string `json:"emailContains,omitempty"`
}

type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Address   *string   `json:"address" db:"address"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
