package driving

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// Ingestor runs the documentation ingestion pipeline.
type Ingestor interface {
	// Run executes one ingestion. The report is always non-nil; the error is
	// non-nil only for fatal conditions (see domain.IsFatal).
	Run(ctx context.Context) (*domain.RunReport, error)
}
