package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripe_NotConfigured(t *testing.T) {
	_, err := NewStripe(StripeConfig{}).CreateIntent(context.Background(), 1999, "usd")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStripe_CreateIntent(t *testing.T) {
	var form atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		form.Store(r.PostForm)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":1999,"currency":"usd","client_secret":"pi_1_secret_abc"}`))
	}))
	defer srv.Close()

	gw := NewStripe(StripeConfig{SecretKey: "sk_test_123", BaseURL: srv.URL})
	secret, err := gw.CreateIntent(context.Background(), 1999, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", secret)

	sent, ok := form.Load().(url.Values)
	require.True(t, ok)
	assert.Equal(t, []string{"1999"}, sent["amount"])
	assert.Equal(t, []string{"usd"}, sent["currency"])
	assert.Equal(t, []string{"card"}, sent["payment_method_types[0]"])
}

func TestStripe_FailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"down"}}`))
	}))
	defer srv.Close()

	gw := NewStripe(StripeConfig{SecretKey: "sk_test_123", BaseURL: srv.URL})
	_, err := gw.CreateIntent(context.Background(), 1999, "usd")
	assert.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestStripe_RejectsNonPositiveAmount(t *testing.T) {
	gw := NewStripe(StripeConfig{SecretKey: "sk_test_123", BaseURL: "http://127.0.0.1:1"})
	_, err := gw.CreateIntent(context.Background(), 0, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestStripe_RejectsAmountAboveCeiling(t *testing.T) {
	gw := NewStripe(StripeConfig{SecretKey: "sk_test_123", BaseURL: "http://127.0.0.1:1"})
	_, err := gw.CreateIntent(context.Background(), MaxAmount+1, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
