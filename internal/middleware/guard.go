package middleware

import (
	"github.com/arzan03/ElectricTools/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// Decision is the outcome of a Guard.
type Decision struct {
	Allowed bool
	Status  int
	Message string
}

// Allow lets the request continue to the next guard or handler.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny stops the chain and answers status with {message}.
func Deny(status int, message string) Decision {
	return Decision{Status: status, Message: message}
}

// Guard inspects a request and allows or denies it. Guards may store
// values in c.Locals for the guards and handlers after them.
type Guard func(c *fiber.Ctx) Decision

// Chain runs guards in order and answers with the first denial;
// the request reaches the next handler only if every guard allows it.
func Chain(guards ...Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, guard := range guards {
			if d := guard(c); !d.Allowed {
				metrics.AccessDenied.WithLabelValues(statusLabel(d.Status)).Inc()
				return c.Status(d.Status).JSON(fiber.Map{"message": d.Message})
			}
		}
		return c.Next()
	}
}

func statusLabel(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "401"
	case fiber.StatusForbidden:
		return "403"
	}
	return "other"
}
