package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	rdb             *redis.Client
	searchAvailable bool
	startAt         time.Time
}

// NewHealthHandler builds the probes. rdb is nil when rate-limit counters
// are kept in memory.
func NewHealthHandler(rdb *redis.Client, searchAvailable bool) *HealthHandler {
	return &HealthHandler{
		rdb:             rdb,
		searchAvailable: searchAvailable,
		startAt:         time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// A missing search key degrades the gateway but /download still works.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c, 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	rateLimit := checkRedis(ctx, h.rdb)
	checks["rate_limit_store"] = rateLimit
	if rateLimit["status"] == "down" {
		overallStatus = "degraded"
	}

	if h.searchAvailable {
		checks["search_provider"] = fiber.Map{"status": "configured"}
	} else {
		checks["search_provider"] = fiber.Map{"status": "disabled"}
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "memory",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
