package handlers

import (
	"github.com/arzan03/ElectricTools/internal/middleware"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview attributes the review to the token's email when the caller
// is authenticated.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return badBody(c)
	}
	if claims, ok := middleware.ClaimsFrom(c); ok {
		review.Email = claims.Email
	}

	created, err := h.reviews.Create(c.UserContext(), review)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": created.ID})
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.reviews.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	if err := h.reviews.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}
