package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gocrm/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches entities by id in front of the relational store.
// Misses return (nil, nil); cache errors never fail the calling operation.
type CacheService interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	SetCustomer(ctx context.Context, customer *models.Customer, ttl time.Duration) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SetOrder(ctx context.Context, order *models.Order, ttl time.Duration) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func customerKey(id uuid.UUID) string { return fmt.Sprintf("gocrm:customer:%s", id.String()) }
func productKey(id uuid.UUID) string  { return fmt.Sprintf("gocrm:product:%s", id.String()) }
func orderKey(id uuid.UUID) string    { return fmt.Sprintf("gocrm:order:%s", id.String()) }

func (r *redisCacheService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	hit, err := r.get(ctx, customerKey(id), &customer)
	if err != nil || !hit {
		return nil, err
	}
	return &customer, nil
}

func (r *redisCacheService) SetCustomer(ctx context.Context, customer *models.Customer, ttl time.Duration) error {
	return r.set(ctx, customerKey(customer.ID), customer, ttl)
}

func (r *redisCacheService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, customerKey(id)).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	hit, err := r.get(ctx, productKey(id), &product)
	if err != nil || !hit {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return r.set(ctx, productKey(product.ID), product, ttl)
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, productKey(id)).Err()
}

func (r *redisCacheService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	hit, err := r.get(ctx, orderKey(id), &order)
	if err != nil || !hit {
		return nil, err
	}
	return &order, nil
}

func (r *redisCacheService) SetOrder(ctx context.Context, order *models.Order, ttl time.Duration) error {
	return r.set(ctx, orderKey(order.ID), order, ttl)
}

func (r *redisCacheService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, orderKey(id)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
