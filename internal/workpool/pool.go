// Package workpool runs a batch of tasks under a hard concurrency ceiling.
//
// A fixed number of workers pull item indices from one shared queue. A worker
// takes the next item only after its current task returned, so at most limit
// tasks are ever in flight and a slot is released on success and failure
// alike. Tasks report their own per-item failures through their result type;
// the pool never aborts siblings because one task failed.
package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is used when a non-positive limit is given.
const DefaultLimit = 1

// Task processes one item and returns its result.
type Task[T, R any] func(ctx context.Context, item T) R

// Map runs task once per item with at most limit tasks in flight and returns
// the results in input order. Completion order is unconstrained.
//
// Map returns after every started task has settled. If ctx is cancelled,
// workers stop taking new items and Map returns ctx.Err(); results for items
// that never started are left as the zero value.
func Map[T, R any](ctx context.Context, limit int, items []T, task Task[T, R]) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	workers := min(limit, len(items))

	queue := make(chan int, len(items))
	for i := range items {
		queue <- i
	}
	close(queue)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for i := range queue {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = task(ctx, items[i])
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
