package services

import (
	"context"
	"fmt"

	"github.com/arzan03/ElectricTools/internal/repository"
	"github.com/arzan03/ElectricTools/internal/utils"
	"github.com/shopspring/decimal"
)

type Stats struct {
	Revenue   float64 `json:"revenue"`
	Customers int64   `json:"customers"`
	Tools     int64   `json:"tools"`
	Orders    int64   `json:"orders"`
}

type StatsService struct {
	users    repository.UserStore
	tools    repository.ToolStore
	orders   repository.OrderStore
	payments repository.PaymentStore
}

func NewStatsService(users repository.UserStore, tools repository.ToolStore, orders repository.OrderStore, payments repository.PaymentStore) *StatsService {
	return &StatsService{users: users, tools: tools, orders: orders, payments: payments}
}

// Collect runs the four aggregate queries concurrently.
func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	var (
		stats   Stats
		revenue float64
	)
	err := utils.RunParallelTasks(ctx, 0,
		func(ctx context.Context) (err error) {
			revenue, err = s.payments.Revenue(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			stats.Customers, err = s.users.Count(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			stats.Tools, err = s.tools.Count(ctx, "")
			return err
		},
		func(ctx context.Context) (err error) {
			stats.Orders, err = s.orders.Count(ctx)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	stats.Revenue = decimal.NewFromFloat(revenue).Round(2).InexactFloat64()
	return &stats, nil
}
