package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": "dev",
		})
	}
}

// readinessCheck probes one dependency. A nil probe means the dependency was
// not configured at startup.
type readinessCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) string
}

func readinessChecks(deps *Dependencies) []readinessCheck {
	checks := []readinessCheck{
		{name: "database", required: true},
		{name: "nats"},
		{name: "cache"},
	}
	if deps.DB != nil {
		checks[0].probe = func(ctx context.Context) string { return errStatus(deps.DB.Ping(ctx)) }
	}
	if deps.NATS != nil {
		checks[1].probe = func(context.Context) string {
			if deps.NATS.IsConnected() {
				return "ok"
			}
			return "disconnected"
		}
	}
	if deps.Cache != nil {
		checks[2].probe = func(ctx context.Context) string { return errStatus(deps.Cache.Ping(ctx)) }
	}
	return checks
}

func errStatus(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// ReadyHandler reports each dependency. Only the database is required: map
// sessions run without the panel feed and without the cache.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	checks := readinessChecks(deps)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true
		for _, chk := range checks {
			status := "not configured"
			if chk.probe != nil {
				status = chk.probe(ctx)
			}
			results[chk.name] = status
			if chk.required && status != "ok" {
				ready = false
			}
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": results})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": results})
	}
}
