// Package gateway creates payment intents with an external payment provider.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Gateway reserves a charge and returns the client-side secret used to
// complete it.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

var ErrNotConfigured = errors.New("payment gateway is not configured")

type StripeConfig struct {
	SecretKey string
	// BaseURL overrides the API host, e.g. for stripe-mock.
	BaseURL string
}

type Stripe struct {
	api *client.API
}

// NewStripe builds a client that makes exactly one attempt per call.
func NewStripe(cfg StripeConfig) *Stripe {
	if cfg.SecretKey == "" {
		return &Stripe{}
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: 30 * time.Second},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.BaseURL != "" {
		backendConfig.URL = stripe.String(cfg.BaseURL)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	}
	return &Stripe{api: client.New(cfg.SecretKey, backends)}
}

func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if s.api == nil {
		return "", ErrNotConfigured
	}
	if amount <= 0 || amount > MaxAmount {
		return "", ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
