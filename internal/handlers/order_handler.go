package handlers

import (
	"github.com/arzan03/ElectricTools/internal/metrics"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return badBody(c)
	}

	created, err := h.orders.Create(c.UserContext(), order)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": created.ID, "order": created})
}

// ListOrders runs behind SelfByQuery("email").
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListByCustomer(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return deleted(c)
}

// ConfirmPayment serves PATCH /order/:id.
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	var payment services.PaymentInput
	if err := c.BodyParser(&payment); err != nil {
		return badBody(c)
	}

	order, err := h.orders.ConfirmPayment(c.UserContext(), c.Params("id"), payment)
	if err != nil {
		return respondError(c, err)
	}
	metrics.PaymentsConfirmed.Inc()
	return c.JSON(order)
}
