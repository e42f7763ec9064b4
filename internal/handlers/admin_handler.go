package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ListUsers returns every user (admin only).
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// PromoteUser grants the admin role; repeating it is harmless.
func (h *UserHandler) PromoteUser(c *fiber.Ctx) error {
	user, err := h.users.Promote(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// AdminStats reports revenue and collection sizes for the dashboard.
func (h *UserHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.stats.Collect(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
