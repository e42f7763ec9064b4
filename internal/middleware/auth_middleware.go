package middleware

import (
	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenVerifier is satisfied by *services.TokenService.
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// Authenticated validates the bearer token and stores its claims.
// A missing or non-Bearer header is 401; a token that fails verification
// is 403. The verification error itself is only logged.
func Authenticated(tokens TokenVerifier) Guard {
	return func(c *fiber.Ctx) Decision {
		tokenString, err := services.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return Deny(fiber.StatusUnauthorized, msgUnauthorized)
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			logger.FromCtx(c).Debug("token rejected", "error", err)
			return Deny(fiber.StatusForbidden, msgForbidden)
		}

		c.Locals(claimsKey, claims)
		return Allow()
	}
}

// ClaimsFrom returns the claims stored by Authenticated.
func ClaimsFrom(c *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*services.Claims)
	return claims, ok && claims != nil
}

// Optional stores claims when a valid token is present and never denies.
func Optional(tokens TokenVerifier) Guard {
	return func(c *fiber.Ctx) Decision {
		tokenString, err := services.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return Allow()
		}
		if claims, err := tokens.Verify(tokenString); err == nil {
			c.Locals(claimsKey, claims)
		}
		return Allow()
	}
}
