package handlers

import (
	"net/http"
	"time"

	"gocrm/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check endpoints.
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck reports connectivity to the relational store and the cache.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		if health.Status == "healthy" {
			health.Status = "degraded"
		}
	} else {
		health.Services["redis"] = "healthy"
	}

	code := http.StatusOK
	if health.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}

// ReadinessCheck reports whether the server can accept traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
