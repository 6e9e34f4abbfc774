package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

type HealthHandler struct {
	db    *sqlx.DB
	cache *cache.Cache
}

func NewHealthHandler(db *sqlx.DB, cacheService *cache.Cache) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cacheService,
	}
}

// Health reports process liveness
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Ready reports whether the backing stores answer
// GET /ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := h.db.PingContext(c.Context()); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := h.cache.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"checks": checks,
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": checks,
	})
}
