package repositories

import (
	"context"
	"errors"

	"gocrm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, price, stock, created_at, updated_at`

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Price, product.Stock)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at
	`
	return r.queryProducts(ctx, query)
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
	`
	return r.queryProducts(ctx, query, ids)
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock < $1
		ORDER BY created_at
	`
	return r.queryProducts(ctx, query, threshold)
}

func (r *productRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	query := `
		UPDATE products
		SET stock = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, stock, id)
	return err
}

func (r *productRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
