package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentInput is the client's confirmation of a completed charge.
type PaymentInput struct {
	TransactionID  string  `json:"transactionId"`
	Date           string  `json:"date"`
	TotalToolPrice float64 `json:"totalToolPrice"`
}

type OrderService struct {
	orders   repository.OrderStore
	payments repository.PaymentStore
	tx       repository.Transactor
}

func NewOrderService(orders repository.OrderStore, payments repository.PaymentStore, tx repository.Transactor) *OrderService {
	return &OrderService{orders: orders, payments: payments, tx: tx}
}

// Create stores a new unpaid order.
func (s *OrderService) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	order.CustomerEmail = normalizeEmail(order.CustomerEmail)
	if order.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if order.ToolPrice < 0 || order.Quantity < 0 {
		return nil, fmt.Errorf("%w: price and quantity must not be negative", ErrInvalidInput)
	}

	order.ID = primitive.NilObjectID
	order.Paid = false
	order.TransactionID = nil
	if err := s.orders.Insert(ctx, &order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.FindByCustomer(ctx, normalizeEmail(email))
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, objID)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.orders.Delete(ctx, objID)
}

// ConfirmPayment records the payment and marks the order paid as one step.
//
// The payment is written before the order so a failed insert never leaves a
// paid order without its payment. The order update only matches while
// paid is false, so concurrent confirmations transition the order once.
// Repeating a confirmation with the same transaction id returns the paid
// order; a different transaction id on a paid order is ErrAlreadyPaid.
func (s *OrderService) ConfirmPayment(ctx context.Context, id string, in PaymentInput) (*models.Order, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if in.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId is required", ErrInvalidInput)
	}

	var paid *models.Order
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByID(ctx, objID)
		if err != nil {
			return err
		}
		if order.Paid {
			if paidWith(order, in.TransactionID) {
				paid = order
				return nil
			}
			return ErrAlreadyPaid
		}

		if err := s.recordPayment(ctx, order, in); err != nil {
			return err
		}

		ok, err := s.orders.MarkPaid(ctx, objID, in.TransactionID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !ok {
			// A concurrent retry with the same transaction id may have won.
			current, err := s.orders.FindByID(ctx, objID)
			if err != nil {
				return err
			}
			if paidWith(current, in.TransactionID) {
				paid = current
				return nil
			}
			return ErrAlreadyPaid
		}

		order.Paid = true
		order.TransactionID = &in.TransactionID
		paid = order
		return nil
	})

	switch {
	case err == nil:
		return paid, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyPaid):
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", ErrTransaction, err)
}

// recordPayment inserts the payment for order unless one with the same
// transaction id already exists. A payment under another transaction id
// is ErrAlreadyPaid.
func (s *OrderService) recordPayment(ctx context.Context, order *models.Order, in PaymentInput) error {
	existing, err := s.payments.FindByOrder(ctx, order.ID)
	switch {
	case err == nil:
		return samePayment(existing, in)
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find payment: %w", err)
	}

	payment := &models.Payment{
		OrderID:        order.ID,
		CustomerEmail:  order.CustomerEmail,
		TotalToolPrice: in.TotalToolPrice,
		TransactionID:  in.TransactionID,
		Date:           in.Date,
	}
	if payment.TotalToolPrice == 0 {
		payment.TotalToolPrice = orderTotal(order)
	}
	err = s.payments.Insert(ctx, payment)
	if !errors.Is(err, repository.ErrDuplicate) {
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	}

	// Lost the insert race; the winner's payment decides.
	existing, err = s.payments.FindByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("find payment: %w", err)
	}
	return samePayment(existing, in)
}

func paidWith(order *models.Order, transactionID string) bool {
	return order.Paid && order.TransactionID != nil && *order.TransactionID == transactionID
}

func samePayment(p *models.Payment, in PaymentInput) error {
	if p.TransactionID != in.TransactionID {
		return ErrAlreadyPaid
	}
	return nil
}

// orderTotal is the price of the order when the confirmation omits it:
// unit price times quantity, a missing quantity counting as one.
func orderTotal(order *models.Order) float64 {
	quantity := int64(order.Quantity)
	if quantity < 1 {
		quantity = 1
	}
	return decimal.NewFromFloat(order.ToolPrice).Mul(decimal.NewFromInt(quantity)).Round(2).InexactFloat64()
}
