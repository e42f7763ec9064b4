package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RoleChecker is satisfied by *services.UserService.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// UserLookup is satisfied by *services.UserService.
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// Admin allows only callers whose stored user has the admin role.
// It must run after Authenticated; it reads the claims, never the token.
func Admin(users RoleChecker) Guard {
	return func(c *fiber.Ctx) Decision {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return Deny(fiber.StatusUnauthorized, msgUnauthorized)
		}

		isAdmin, err := users.IsAdmin(c.UserContext(), claims.Email)
		if err != nil {
			logger.FromCtx(c).Error("admin lookup failed", "email", claims.Email, "error", err)
			return Deny(fiber.StatusInternalServerError, "internal server error")
		}
		if !isAdmin {
			return Deny(fiber.StatusForbidden, msgForbidden)
		}
		return Allow()
	}
}

// SelfByQuery allows the request only when the query parameter names the
// caller's own email.
func SelfByQuery(param string) Guard {
	return func(c *fiber.Ctx) Decision {
		return sameEmail(c, c.Query(param))
	}
}

// SelfByUserID loads the user named by the path id and allows the request
// only when it belongs to the caller. Unknown ids are denied like foreign
// ones so the response does not reveal which ids exist.
func SelfByUserID(users UserLookup, param string) Guard {
	return func(c *fiber.Ctx) Decision {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return Deny(fiber.StatusUnauthorized, msgUnauthorized)
		}

		user, err := users.Get(c.UserContext(), c.Params(param))
		switch {
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrInvalidInput):
			return Deny(fiber.StatusForbidden, msgForbidden)
		case err != nil:
			logger.FromCtx(c).Error("user lookup failed", "error", err)
			return Deny(fiber.StatusInternalServerError, "internal server error")
		}
		if !strings.EqualFold(user.Email, claims.Email) {
			return Deny(fiber.StatusForbidden, msgForbidden)
		}
		return Allow()
	}
}

func sameEmail(c *fiber.Ctx, email string) Decision {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return Deny(fiber.StatusUnauthorized, msgUnauthorized)
	}
	if email == "" || !strings.EqualFold(strings.TrimSpace(email), claims.Email) {
		return Deny(fiber.StatusForbidden, msgForbidden)
	}
	return Allow()
}
