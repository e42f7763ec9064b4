package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelTask is one unit of work run by RunParallelTasks.
type ParallelTask func(ctx context.Context) error

// RunParallelTasks executes tasks concurrently, at most limit at a time
// (limit <= 0 means unbounded). The first error cancels the shared context
// and is returned once every task has finished.
func RunParallelTasks(ctx context.Context, limit int, tasks ...ParallelTask) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, task := range tasks {
		g.Go(func() error {
			return task(ctx)
		})
	}
	return g.Wait()
}
