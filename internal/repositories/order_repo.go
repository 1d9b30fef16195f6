package repositories

import (
	"context"
	"errors"

	"gocrm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	// CreateWithProducts writes the order row and its product associations
	// inside a single transaction.
	CreateWithProducts(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	Count(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithProducts(ctx context.Context, order *models.Order, productIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, order_number, total_amount, status, notes, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.CustomerID, order.OrderNumber, order.TotalAmount, order.Status, order.Notes, order.OrderDate); err != nil {
		return err
	}

	junctionQuery := `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
	`
	for _, productID := range productIDs {
		if _, err := tx.Exec(ctx, junctionQuery, order.ID, productID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	order.ProductIDs = productIDs
	return nil
}

const orderWithCustomerQuery = `
	SELECT o.id, o.customer_id, o.order_number, o.total_amount, o.status, o.notes, o.order_date, o.created_at, o.updated_at,
	       c.id, c.first_name, c.last_name, c.email, c.phone, c.address, c.is_active, c.created_at, c.updated_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
`

func scanOrderWithCustomer(row pgx.Row) (*models.Order, error) {
	order := &models.Order{Customer: &models.Customer{}}
	c := order.Customer
	err := row.Scan(&order.ID, &order.CustomerID, &order.OrderNumber, &order.TotalAmount, &order.Status, &order.Notes, &order.OrderDate, &order.CreatedAt, &order.UpdatedAt,
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := orderWithCustomerQuery + ` WHERE o.id = $1`
	order, err := scanOrderWithCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	productIDs, err := r.productIDsFor(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.ProductIDs = productIDs[order.ID]
	return order, nil
}

func (r *orderRepo) List(ctx context.Context) ([]*models.Order, error) {
	query := orderWithCustomerQuery + ` ORDER BY o.created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	var orderIDs []uuid.UUID
	for rows.Next() {
		order, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	productIDs, err := r.productIDsFor(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.ProductIDs = productIDs[order.ID]
	}
	return orders, nil
}

// productIDsFor loads junction rows for a set of orders in one query.
func (r *orderRepo) productIDsFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	query := `
		SELECT order_id, product_id
		FROM order_products
		WHERE order_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var orderID, productID uuid.UUID
		if err := rows.Scan(&orderID, &productID); err != nil {
			return nil, err
		}
		byOrder[orderID] = append(byOrder[orderID], productID)
	}
	return byOrder, rows.Err()
}

func (r *orderRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}
