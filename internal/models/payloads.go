package models

import "time"

// FieldError is a validation failure attributed to one named input field.
// Mutations collect every violation for a request before failing, so a
// payload can carry several of these at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type CreateCustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type CreateProductInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock *int    `json:"stock,omitempty"`
}

type CreateOrderInput struct {
	CustomerID string     `json:"customerId"`
	ProductIDs []string   `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate,omitempty"`
}

type CustomerPayload struct {
	Customer *Customer    `json:"customer"`
	Message  string       `json:"message"`
	Errors   []FieldError `json:"errors"`
}

type BulkCustomerPayload struct {
	Customers []*Customer `json:"customers"`
	Errors    []string    `json:"errors"`
	Message   string      `json:"message"`
}

type ProductPayload struct {
	Product *Product     `json:"product"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type OrderPayload struct {
	Order   *Order       `json:"order"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type LowStockPayload struct {
	UpdatedProducts []*Product `json:"updatedProducts"`
	Success         bool       `json:"success"`
	Message         string     `json:"message"`
	Count           int        `json:"count"`
}

// ReportSummary is the weekly report aggregate, computed in a single
// read-only transaction.
type ReportSummary struct {
	Customers   int       `json:"customers"`
	Orders      int       `json:"orders"`
	Revenue     float64   `json:"revenue"`
	GeneratedAt time.Time `json:"generatedAt"`
}
