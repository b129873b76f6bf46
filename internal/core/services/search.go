package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/core/ports/driving"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultTopK is the number of chunks returned when none is requested.
const DefaultTopK = 5

// SearchService queries the configured stores.
type SearchService struct {
	searcher driven.StoreSearcher
	storeIDs []string
}

// NewSearchService creates a search service over storeIDs.
func NewSearchService(searcher driven.StoreSearcher, storeIDs ...string) *SearchService {
	return &SearchService{searcher: searcher, storeIDs: storeIDs}
}

// Search returns up to topK chunks for query.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if len(s.storeIDs) == 0 {
		return nil, fmt.Errorf("%w: no store configured", domain.ErrConfiguration)
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	chunks, err := s.searcher.Search(ctx, domain.SearchQuery{
		Query:    query,
		StoreIDs: s.storeIDs,
		TopK:     topK,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return chunks, nil
}
