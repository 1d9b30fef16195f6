package services

import (
	"context"
	"time"

	"gocrm/internal/models"
	"gocrm/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// ReportService computes the weekly CRM summary. All three aggregates read
// from one read-only transaction so the numbers describe a single snapshot.
type ReportService interface {
	Generate(ctx context.Context) (*models.ReportSummary, error)
}

type reportService struct {
	db repositories.Database
}

func NewReportService(db repositories.Database) ReportService {
	return &reportService{db: db}
}

func (s *reportService) Generate(ctx context.Context) (*models.ReportSummary, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	summary := &models.ReportSummary{GeneratedAt: time.Now()}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&summary.Customers); err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&summary.Orders); err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&summary.Revenue); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
