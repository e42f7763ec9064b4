package handlers

import (
	"errors"
	"net/url"

	"github.com/arzan03/ElectricTools/internal/middleware"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
	stats *services.StatsService
}

func NewUserHandler(users *services.UserService, stats *services.StatsService) *UserHandler {
	return &UserHandler{users: users, stats: stats}
}

type userRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	models.Profile
}

func (r userRequest) user() models.User {
	return models.User{Email: r.Email, Name: r.Name, Profile: r.Profile}
}

// SaveUser serves POST /user.
func (h *UserHandler) SaveUser(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	user, err := h.users.Upsert(c.UserContext(), request.user())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SignIn serves PUT /user/email/:email: upsert, then hand back a token.
func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid email"})
	}
	request.Email = email

	user, token, err := h.users.SignIn(c.UserContext(), request.user())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"result": user, "token": token})
}

// IssueToken serves GET /jwt?email=.
func (h *UserHandler) IssueToken(c *fiber.Ctx) error {
	token, err := h.users.IssueToken(c.UserContext(), c.Query("email"))
	if errors.Is(err, services.ErrUnknownIdentity) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"accessToken": ""})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"accessToken": token})
}

// GetProfile runs behind SelfByQuery("email").
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile runs behind SelfByUserID("id").
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), c.Params("id"), request.Name, request.Profile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// CheckAdmin serves GET /user/admin/:email for front-end gating.
func (h *UserHandler) CheckAdmin(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return c.JSON(fiber.Map{"isAdmin": false})
	}
	isAdmin, err := h.users.IsAdmin(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isAdmin": isAdmin})
}

// Me returns the claims of the current token.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(fiber.Map{"email": claims.Email})
}
