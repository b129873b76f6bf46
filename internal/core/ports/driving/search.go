package driving

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// SearchService queries the configured content store.
type SearchService interface {
	// Search returns up to topK scored chunks for query.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)
}
