package driven

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// ContentStore is the destination indexing service.
type ContentStore interface {
	// FileCount returns the total number of files indexed in the store.
	FileCount(ctx context.Context, storeID string) (int, error)

	// UploadAndPoll ingests a file with metadata and blocks until the store
	// reports it fully indexed. A failed or cancelled indexing is an error.
	UploadAndPoll(ctx context.Context, storeID string, file domain.FilePayload, metadata map[string]any) error
}

// StoreSearcher runs semantic search over one or more stores.
type StoreSearcher interface {
	// Search returns scored chunks with metadata.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.ScoredChunk, error)
}
