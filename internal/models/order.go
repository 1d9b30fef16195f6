package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	CustomerID  uuid.UUID   `json:"customerId" db:"customer_id"`
	OrderNumber string      `json:"orderNumber" db:"order_number"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	Status      string      `json:"status" db:"status"`
	Notes       *string     `json:"notes" db:"notes"`
	OrderDate   time.Time   `json:"orderDate" db:"order_date"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	ProductIDs  []uuid.UUID `json:"productIds,omitempty"`
	Customer    *Customer   `json:"customer,omitempty"`
}
