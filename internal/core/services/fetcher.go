package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/logger"
	"github.com/custodia-labs/docsync/internal/workpool"
)

// DefaultFetchConcurrency is the download ceiling.
const DefaultFetchConcurrency = 30

var errEmptyContent = errors.New("empty content")

// Fetcher downloads candidate content with bounded concurrency.
type Fetcher struct {
	repo     driven.SourceRepository
	limit    int
	reporter driven.ProgressReporter
	metrics  driven.PipelineMetrics
}

// NewFetcher creates a fetcher. A limit below 1 uses DefaultFetchConcurrency.
// metrics may be nil.
func NewFetcher(
	repo driven.SourceRepository,
	limit int,
	reporter driven.ProgressReporter,
	metrics driven.PipelineMetrics,
) *Fetcher {
	if limit < 1 {
		limit = DefaultFetchConcurrency
	}
	return &Fetcher{repo: repo, limit: limit, reporter: reporterOrNop(reporter), metrics: metrics}
}

type fetchResult struct {
	doc domain.FetchedDocument
	err error
}

// FetchAll downloads every candidate once and returns the successes in
// candidate order with the number of failures. Item failures are reported
// and never abort siblings; the error is non-nil only on cancellation.
func (f *Fetcher) FetchAll(
	ctx context.Context,
	ref domain.RepoRef,
	candidates []domain.DocumentCandidate,
) ([]domain.FetchedDocument, int, error) {
	tracker := newProgressTracker(domain.PhaseFetch, len(candidates), f.reporter)

	results, err := workpool.Map(ctx, f.limit, candidates, func(ctx context.Context, c domain.DocumentCandidate) fetchResult {
		defer tracker.complete()

		start := time.Now()
		content, err := f.repo.FetchContent(ctx, ref, c.Path)
		if err == nil && content == "" {
			err = errEmptyContent
		}
		f.observe(err == nil)

		if err != nil {
			itemErr := domain.NewItemError(domain.PhaseFetch, c.Path, err)
			logger.Debug("fetch failed", "path", c.Path, "error", err)
			f.reporter.Warn("Failed to fetch %s: %v", c.Path, err)
			return fetchResult{err: itemErr}
		}

		logger.Debug("fetched", "path", c.Path, "bytes", len(content), "took", time.Since(start))
		return fetchResult{doc: domain.FetchedDocument{Path: c.Path, RawContent: content}}
	})
	if err != nil {
		return nil, 0, err
	}

	docs := make([]domain.FetchedDocument, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			continue
		}
		docs = append(docs, r.doc)
	}
	return docs, failed, nil
}

func (f *Fetcher) observe(success bool) {
	if f.metrics != nil {
		f.metrics.ObserveItem(domain.PhaseFetch, success)
	}
}
