package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository/memory"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService() (*services.OrderService, *memory.OrderStore, *memory.PaymentStore) {
	orders := memory.NewOrderStore()
	payments := memory.NewPaymentStore()
	return services.NewOrderService(orders, payments, memory.Transactor{}), orders, payments
}

func placeOrder(t *testing.T, svc *services.OrderService) *models.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), models.Order{
		CustomerEmail: "Buyer@Example.com",
		ToolName:      "Drill",
		ToolPrice:     19.99,
		Quantity:      2,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_CreateStartsUnpaid(t *testing.T) {
	svc, _, _ := newOrderService()
	txID := "forged"

	order, err := svc.Create(context.Background(), models.Order{
		CustomerEmail: "buyer@example.com",
		Paid:          true,
		TransactionID: &txID,
	})
	require.NoError(t, err)
	assert.False(t, order.Paid)
	assert.Nil(t, order.TransactionID)
	assert.False(t, order.ID.IsZero())
}

func TestOrderService_CreateRequiresEmail(t *testing.T) {
	svc, _, _ := newOrderService()

	_, err := svc.Create(context.Background(), models.Order{ToolName: "Drill"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestOrderService_ListByCustomer(t *testing.T) {
	svc, _, _ := newOrderService()
	placeOrder(t, svc)
	_, err := svc.Create(context.Background(), models.Order{CustomerEmail: "other@example.com"})
	require.NoError(t, err)

	orders, err := svc.ListByCustomer(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "buyer@example.com", orders[0].CustomerEmail)
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newOrderService()
	order := placeOrder(t, svc)

	paid, err := svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{
		TransactionID:  "pi_1",
		TotalToolPrice: 39.98,
	})
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.TransactionID)
	assert.Equal(t, "pi_1", *paid.TransactionID)

	stored, err := svc.Get(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.True(t, stored.Paid)

	all := payments.All()
	require.Len(t, all, 1)
	assert.Equal(t, order.ID, all[0].OrderID)
	assert.Equal(t, "pi_1", all[0].TransactionID)
	assert.Equal(t, "buyer@example.com", all[0].CustomerEmail)

	t.Run("same transaction is idempotent", func(t *testing.T) {
		again, err := svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{TransactionID: "pi_1"})
		require.NoError(t, err)
		assert.True(t, again.Paid)
		assert.Len(t, payments.All(), 1)
	})

	t.Run("different transaction is rejected", func(t *testing.T) {
		_, err := svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{TransactionID: "pi_2"})
		assert.ErrorIs(t, err, services.ErrAlreadyPaid)
		assert.Len(t, payments.All(), 1)
	})
}

func TestOrderService_ConfirmPaymentErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newOrderService()
	order := placeOrder(t, svc)

	_, err := svc.ConfirmPayment(ctx, "not-an-id", services.PaymentInput{TransactionID: "pi_1"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{TransactionID: "  "})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.ConfirmPayment(ctx, "65a000000000000000000000", services.PaymentInput{TransactionID: "pi_1"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Empty(t, payments.All())
}

func TestOrderService_ConfirmPaymentConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newOrderService()
	order := placeOrder(t, svc)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{
				TransactionID: fmt.Sprintf("pi_%d", i),
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, services.ErrAlreadyPaid)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	all := payments.All()
	require.Len(t, all, 1)

	stored, err := svc.Get(ctx, order.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.TransactionID)
	assert.Equal(t, all[0].TransactionID, *stored.TransactionID)
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrderService()
	order := placeOrder(t, svc)

	require.NoError(t, svc.Delete(ctx, order.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, order.ID.Hex()), services.ErrNotFound)
}

func TestOrderService_ConfirmPaymentConcurrentRetries(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newOrderService()
	order := placeOrder(t, svc)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{TransactionID: "pi_same"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	all := payments.All()
	require.Len(t, all, 1)
	assert.Equal(t, "pi_same", all[0].TransactionID)
}

func TestOrderService_ConfirmPaymentDefaultsTotal(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newOrderService()
	order := placeOrder(t, svc)

	_, err := svc.ConfirmPayment(ctx, order.ID.Hex(), services.PaymentInput{TransactionID: "pi_1"})
	require.NoError(t, err)

	all := payments.All()
	require.Len(t, all, 1)
	assert.Equal(t, 39.98, all[0].TotalToolPrice)

	single, err := svc.Create(ctx, models.Order{CustomerEmail: "buyer@example.com", ToolPrice: 12.5})
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(ctx, single.ID.Hex(), services.PaymentInput{TransactionID: "pi_2"})
	require.NoError(t, err)

	p, err := payments.FindByOrder(ctx, single.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.TotalToolPrice)
}
