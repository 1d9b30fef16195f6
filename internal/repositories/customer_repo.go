package repositories

import (
	"context"
	"errors"
	"fmt"

	"gocrm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	CreateBatch(ctx context.Context, customers []*models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error)
	Count(ctx context.Context) (int, error)
}

type customerRepo struct {
	db Database
}

func NewCustomerRepo(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `id, first_name, last_name, email, phone, address, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.Address, &customer.IsActive, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.Address, customer.IsActive)
	return err
}

// CreateBatch inserts the whole batch inside one transaction so the final
// commit is all-or-nothing.
func (r *customerRepo) CreateBatch(ctx context.Context, customers []*models.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	for _, customer := range customers {
		if _, err := tx.Exec(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.Address, customer.IsActive); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1
	`
	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = $1
	`
	customer, err := scanCustomer(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *customerRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepo) List(ctx context.Context, filter *models.CustomerFilter) ([]*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
	`
	args := []any{}
	conditionCount := 0

	if filter != nil && filter.NameContains != "" {
		conditionCount++
		query += fmt.Sprintf(` WHERE first_name || ' ' || last_name ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.NameContains+"%")
	}
	if filter != nil && filter.EmailContains != "" {
		conditionCount++
		if conditionCount == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += fmt.Sprintf(` email ILIKE $%d`, conditionCount)
		args = append(args, "%"+filter.EmailContains+"%")
	}

	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.Address, &customer.IsActive, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
