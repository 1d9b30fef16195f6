package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gocrm/internal/models"
	"gocrm/internal/repositories"

	"github.com/google/uuid"
)

type OrderService interface {
	Create(ctx context.Context, input *models.CreateOrderInput) *models.OrderPayload
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, customerRepo repositories.CustomerRepository, productRepo repositories.ProductRepository) OrderService {
	return &orderService{orderRepo: orderRepo, customerRepo: customerRepo, productRepo: productRepo}
}

// newOrderNumber derives a human-readable order number from a random UUID:
// "ORD-" plus its first eight hex digits, uppercased. The unique index on
// order_number backstops the negligible collision chance.
func newOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(hex[:8])
}

func orderFailure(fieldErrors ...models.FieldError) *models.OrderPayload {
	return &models.OrderPayload{Message: "Order creation failed", Errors: fieldErrors}
}

func (s *orderService) Create(ctx context.Context, input *models.CreateOrderInput) *models.OrderPayload {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return orderFailure(models.FieldError{Field: "customerId", Message: fmt.Sprintf("Customer not found: %s", input.CustomerID)})
	}
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return orderFailure(models.FieldError{Field: "database", Message: err.Error()})
	}
	if customer == nil {
		return orderFailure(models.FieldError{Field: "customerId", Message: fmt.Sprintf("Customer not found: %s", input.CustomerID)})
	}

	if len(input.ProductIDs) == 0 {
		return orderFailure(models.FieldError{Field: "productIds", Message: "At least one product is required"})
	}

	// Resolve every id in one pass, collecting each unresolved id instead
	// of stopping at the first. Duplicate ids collapse into one association.
	var fieldErrors []models.FieldError
	var parsed []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(input.ProductIDs))
	unparseable := make(map[string]bool)
	for _, raw := range input.ProductIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			if !unparseable[raw] {
				unparseable[raw] = true
				fieldErrors = append(fieldErrors, models.FieldError{Field: "productIds", Message: fmt.Sprintf("Product not found: %s", raw)})
			}
			continue
		}
		if !seen[productID] {
			seen[productID] = true
			parsed = append(parsed, productID)
		}
	}

	resolved, err := s.productRepo.ListByIDs(ctx, parsed)
	if err != nil {
		return orderFailure(models.FieldError{Field: "database", Message: err.Error()})
	}
	byID := make(map[uuid.UUID]*models.Product, len(resolved))
	for _, product := range resolved {
		byID[product.ID] = product
	}

	var total float64
	productIDs := make([]uuid.UUID, 0, len(parsed))
	for _, productID := range parsed {
		product, ok := byID[productID]
		if !ok {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "productIds", Message: fmt.Sprintf("Product not found: %s", productID.String())})
			continue
		}
		total += product.Price
		productIDs = append(productIDs, productID)
	}

	if len(fieldErrors) > 0 {
		return orderFailure(fieldErrors...)
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		OrderNumber: newOrderNumber(),
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		OrderDate:   orderDate,
		ProductIDs:  productIDs,
		Customer:    customer,
	}
	if err := s.orderRepo.CreateWithProducts(ctx, order, productIDs); err != nil {
		return orderFailure(models.FieldError{Field: "database", Message: err.Error()})
	}

	return &models.OrderPayload{Order: order, Message: "Order created successfully"}
}
