package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orders-api/internal/application/dto"
)

// Pinger dependencia verificable por /health (pgxpool.Pool la implementa).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapta una función a Pinger (p. ej. redis.Client.Ping(ctx).Err).
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reporta el estado de las dependencias.
type HealthHandler struct {
	service string
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler checks: nombre → dependencia. Las nil se ignoran.
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{service: service, checks: active, timeout: 2 * time.Second}
}

// Check responde 200 si todas las dependencias contestan, 503 si alguna falla.
// GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: map[string]string{}}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Services[name] = "down"
			continue
		}
		resp.Services[name] = "up"
	}
	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
