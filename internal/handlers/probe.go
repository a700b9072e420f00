package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	deps map[string]Pinger
}

// NewProbeHandler creates a new probe handler. deps maps a name to each dependency
// that must be reachable; it may be empty.
func NewProbeHandler(deps map[string]Pinger) *ProbeHandler {
	return &ProbeHandler{deps: deps}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if every dependency answers a ping.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for name, dep := range h.deps {
		if err := dep.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
