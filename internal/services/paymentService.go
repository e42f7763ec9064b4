package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/ElectricTools/internal/gateway"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	gateway  gateway.Gateway
	payments repository.PaymentStore
	currency string
}

func NewPaymentService(gw gateway.Gateway, payments repository.PaymentStore, currency string) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{gateway: gw, payments: payments, currency: currency}
}

// CreateIntent converts price to minor units and asks the gateway for a
// payment intent. The gateway is called once; failures are ErrUpstream.
func (s *PaymentService) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	amount, err := gateway.ToMinorUnits(price)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	secret, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidAmount) {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return secret, nil
}

func (s *PaymentService) ListByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	return s.payments.FindByCustomer(ctx, normalizeEmail(email))
}
