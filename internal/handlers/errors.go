package handlers

import (
	"errors"

	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to a status and a {message} body.
// Unexpected errors are logged and answered with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status, message = fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrUnknownIdentity):
		status, message = fiber.StatusForbidden, "forbidden access"
	case errors.Is(err, services.ErrAlreadyPaid):
		status, message = fiber.StatusConflict, "order already paid"
	case errors.Is(err, services.ErrConflict):
		status, message = fiber.StatusConflict, "already exists"
	case errors.Is(err, services.ErrTransaction):
		status, message = fiber.StatusInternalServerError, "payment transaction failed"
	case errors.Is(err, services.ErrUpstream):
		status, message = fiber.StatusBadGateway, "upstream service error"
	case errors.Is(err, services.ErrStorageDisabled):
		status, message = fiber.StatusServiceUnavailable, "image storage is not configured"
	}

	if status >= fiber.StatusInternalServerError {
		logger.FromCtx(c).Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"error", err,
		)
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
}

func deleted(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"acknowledged": true, "deletedCount": 1})
}
