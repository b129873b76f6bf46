package services

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/logger"
	"github.com/custodia-labs/docsync/internal/workpool"
)

// DefaultUploadConcurrency is the upload ceiling.
const DefaultUploadConcurrency = 100

// Uploader submits parsed documents to the content store.
type Uploader struct {
	store    driven.ContentStore
	limit    int
	reporter driven.ProgressReporter
	metrics  driven.PipelineMetrics
}

// NewUploader creates an uploader. A limit below 1 uses DefaultUploadConcurrency.
// metrics may be nil.
func NewUploader(
	store driven.ContentStore,
	limit int,
	reporter driven.ProgressReporter,
	metrics driven.PipelineMetrics,
) *Uploader {
	if limit < 1 {
		limit = DefaultUploadConcurrency
	}
	return &Uploader{store: store, limit: limit, reporter: reporterOrNop(reporter), metrics: metrics}
}

// UploadAll uploads every document once and waits for each to be indexed.
// Outcomes are in document order. The error is non-nil only on cancellation.
func (u *Uploader) UploadAll(
	ctx context.Context,
	storeID string,
	docs []domain.ParsedDocument,
) ([]domain.UploadOutcome, error) {
	tracker := newProgressTracker(domain.PhaseUpload, len(docs), u.reporter)

	outcomes, err := workpool.Map(ctx, u.limit, docs, func(ctx context.Context, doc domain.ParsedDocument) domain.UploadOutcome {
		defer tracker.complete()

		payload := domain.FilePayload{
			Name:      doc.FileName(),
			Content:   []byte(doc.RawContent),
			MediaType: domain.MediaTypeMarkdown,
		}
		err := u.store.UploadAndPoll(ctx, storeID, payload, doc.UploadMetadata())
		if u.metrics != nil {
			u.metrics.ObserveItem(domain.PhaseUpload, err == nil)
		}
		if err != nil {
			logger.Debug("upload failed", "path", doc.Path, "error", err)
			u.reporter.Warn("Failed to upload %s: %v", doc.Path, err)
			return domain.UploadOutcome{
				Path: doc.Path,
				Err:  domain.NewItemError(domain.PhaseUpload, doc.Path, err),
			}
		}

		logger.Debug("uploaded", "path", doc.Path, "source_url", doc.SourceURL)
		return domain.UploadOutcome{Path: doc.Path, Success: true}
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}
