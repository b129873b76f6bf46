package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Lister enumerates documentation candidates from a source repository.
type Lister struct {
	repo driven.SourceRepository
}

// NewLister creates a lister over repo.
func NewLister(repo driven.SourceRepository) *Lister {
	return &Lister{repo: repo}
}

// ListDocuments lists the tree once and keeps blobs matching filter.
// Any listing failure is wrapped in domain.ErrListing.
func (l *Lister) ListDocuments(
	ctx context.Context,
	ref domain.RepoRef,
	filter domain.SourceFilter,
) ([]domain.DocumentCandidate, error) {
	entries, err := l.repo.ListTree(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrListing, ref, err)
	}

	candidates := make([]domain.DocumentCandidate, 0, len(entries))
	for _, entry := range entries {
		if filter.Matches(entry.Path, entry.Kind) {
			candidates = append(candidates, domain.DocumentCandidate{Path: entry.Path, Kind: entry.Kind})
		}
	}

	logger.Debug("listed tree", "ref", ref.String(), "entries", len(entries), "candidates", len(candidates))
	return candidates, nil
}
