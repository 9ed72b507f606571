package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/repository"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	store *repository.Store
	redis *redis.Client
}

// NewHealthHandler reports on store and, when non-nil, the Redis client.
func NewHealthHandler(store *repository.Store, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{store: store, redis: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
	}
	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}
	if h.redis != nil {
		resp.Cache = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Status = "degraded"
			resp.Cache = "unhealthy: " + err.Error()
		}
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
