package handlers

import (
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentIntent accepts {toolPrice} (or {price}) in major units.
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var request struct {
		ToolPrice *decimal.Decimal `json:"toolPrice"`
		Price     *decimal.Decimal `json:"price"`
	}
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	price := request.ToolPrice
	if price == nil {
		price = request.Price
	}
	if price == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "toolPrice is required"})
	}

	secret, err := h.payments.CreateIntent(c.UserContext(), *price)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}

// ListPayments runs behind SelfByQuery("email").
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.payments.ListByCustomer(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payments)
}
