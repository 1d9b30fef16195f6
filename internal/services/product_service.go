package services

import (
	"context"
	"fmt"
	"log"

	"gocrm/internal/caching"
	"gocrm/internal/models"
	"gocrm/internal/repositories"
	"gocrm/internal/validation"

	"github.com/google/uuid"
)

type ProductService interface {
	Create(ctx context.Context, input *models.CreateProductInput) *models.ProductPayload
	// RestockLowStock raises every product below the low-stock threshold by
	// ten units. Safe to invoke repeatedly.
	RestockLowStock(ctx context.Context) *models.LowStockPayload
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService) ProductService {
	return &productService{productRepo: productRepo, cacheService: cacheService}
}

func (s *productService) Create(ctx context.Context, input *models.CreateProductInput) *models.ProductPayload {
	var fieldErrors []models.FieldError

	if !validation.Price(input.Price) {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "price", Message: "Price must be positive"})
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
		if !validation.Stock(stock) {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "stock", Message: "Stock cannot be negative"})
		}
	}

	if len(fieldErrors) > 0 {
		return &models.ProductPayload{Message: "Product creation failed", Errors: fieldErrors}
	}

	product := &models.Product{
		ID:    uuid.New(),
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return &models.ProductPayload{
			Message: "Product creation failed",
			Errors:  []models.FieldError{{Field: "database", Message: err.Error()}},
		}
	}

	return &models.ProductPayload{Product: product, Message: "Product created successfully"}
}

func (s *productService) RestockLowStock(ctx context.Context) *models.LowStockPayload {
	lowStock, err := s.productRepo.ListLowStock(ctx, models.LowStockThreshold)
	if err != nil {
		return &models.LowStockPayload{Message: fmt.Sprintf("Failed to query low-stock products: %s", err.Error())}
	}

	updated := make([]*models.Product, 0, len(lowStock))
	for _, product := range lowStock {
		product.Stock += 10
		if err := s.productRepo.UpdateStock(ctx, product.ID, product.Stock); err != nil {
			return &models.LowStockPayload{
				UpdatedProducts: updated,
				Count:           len(updated),
				Message:         fmt.Sprintf("Failed to update product %s: %s", product.Name, err.Error()),
			}
		}
		if cacheErr := s.cacheService.DeleteProduct(ctx, product.ID); cacheErr != nil {
			log.Printf("Failed to invalidate cache for product %s: %v", product.ID.String(), cacheErr)
		}
		updated = append(updated, product)
	}

	return &models.LowStockPayload{
		UpdatedProducts: updated,
		Success:         true,
		Message:         fmt.Sprintf("Successfully updated %d low-stock products", len(updated)),
		Count:           len(updated),
	}
}
