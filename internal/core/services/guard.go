package services

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Guard decides whether the content store already holds a corpus.
type Guard struct {
	store    driven.ContentStore
	reporter driven.ProgressReporter
}

// NewGuard creates an idempotency guard over store.
func NewGuard(store driven.ContentStore, reporter driven.ProgressReporter) *Guard {
	return &Guard{store: store, reporter: reporterOrNop(reporter)}
}

// CheckPopulated returns the number of files in the store.
// A failed read is reported and treated as an empty store so the run proceeds.
func (g *Guard) CheckPopulated(ctx context.Context, storeID string) int {
	count, err := g.store.FileCount(ctx, storeID)
	if err != nil {
		logger.Debug("store check failed", "store", storeID, "error", err)
		g.reporter.Warn("Failed to check store: %v", err)
		return 0
	}
	if count < 0 {
		return 0
	}
	return count
}
