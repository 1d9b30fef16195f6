package services

import (
	"context"
	"log"
	"time"

	"gocrm/internal/caching"
	"gocrm/internal/models"
	"gocrm/internal/repositories"

	"github.com/google/uuid"
)

const cacheTTL = 15 * time.Minute

// QueryService is the read-only side of the API. Lookups by id return
// (nil, nil) when the entity is absent; absence is a normal outcome, not an
// error.
type QueryService interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListLowStockProducts(ctx context.Context) ([]*models.Product, error)
}

type queryService struct {
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	orderRepo    repositories.OrderRepository
	cacheService caching.CacheService
}

func NewQueryService(customerRepo repositories.CustomerRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, cacheService caching.CacheService) QueryService {
	return &queryService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		cacheService: cacheService,
	}
}

func (s *queryService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	if cached, cacheErr := s.cacheService.GetCustomer(ctx, customerID); cached != nil {
		return cached, nil
	} else if cacheErr != nil {
		log.Printf("Cache error for customer %s: %v", customerID.String(), cacheErr)
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil || customer == nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetCustomer(ctx, customer, cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache customer %s: %v", customerID.String(), cacheErr)
	}
	return customer, nil
}

func (s *queryService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	if cached, cacheErr := s.cacheService.GetProduct(ctx, productID); cached != nil {
		return cached, nil
	} else if cacheErr != nil {
		log.Printf("Cache error for product %s: %v", productID.String(), cacheErr)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache product %s: %v", productID.String(), cacheErr)
	}
	return product, nil
}

func (s *queryService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	if cached, cacheErr := s.cacheService.GetOrder(ctx, orderID); cached != nil {
		return cached, nil
	} else if cacheErr != nil {
		log.Printf("Cache error for order %s: %v", orderID.String(), cacheErr)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetOrder(ctx, order, cacheTTL); cacheErr != nil {
		log.Printf("Failed to cache order %s: %v", orderID.String(), cacheErr)
	}
	return order, nil
}

func (s *queryService) ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx, filter)
}

func (s *queryService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *queryService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *queryService) ListLowStockProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.ListLowStock(ctx, models.LowStockThreshold)
}
