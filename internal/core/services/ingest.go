package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/core/ports/driving"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// flushTimeout bounds publishing metrics after a run.
const flushTimeout = 10 * time.Second

// IngestConfig holds the run parameters.
type IngestConfig struct {
	StoreID           string
	Repo              domain.RepoRef
	Filter            domain.SourceFilter
	FetchConcurrency  int
	UploadConcurrency int
}

// IngestService drives the pipeline:
// guard → list → fetch → parse → upload → summary.
type IngestService struct {
	cfg      IngestConfig
	guard    *Guard
	lister   *Lister
	fetcher  *Fetcher
	parser   driven.ContentParser
	uploader *Uploader
	reporter driven.ProgressReporter
	metrics  driven.PipelineMetrics

	now   func() time.Time
	newID func() string
}

// NewIngestService wires the pipeline. reporter and metrics may be nil.
func NewIngestService(
	cfg IngestConfig,
	repo driven.SourceRepository,
	store driven.ContentStore,
	parser driven.ContentParser,
	reporter driven.ProgressReporter,
	metrics driven.PipelineMetrics,
) *IngestService {
	reporter = reporterOrNop(reporter)
	return &IngestService{
		cfg:      cfg,
		guard:    NewGuard(store, reporter),
		lister:   NewLister(repo),
		fetcher:  NewFetcher(repo, cfg.FetchConcurrency, reporter, metrics),
		parser:   parser,
		uploader: NewUploader(store, cfg.UploadConcurrency, reporter, metrics),
		reporter: reporter,
		metrics:  metrics,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run executes one ingestion. The report is always returned; the error is
// non-nil only when the run was aborted.
func (s *IngestService) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     s.newID(),
		State:     domain.StateInit,
		StartedAt: s.now(),
	}
	log := logger.With("run_id", report.RunID)
	log.Info("run started", "store", s.cfg.StoreID, "repo", s.cfg.Repo.String())

	err := s.run(ctx, report, log)
	report.FinishedAt = s.now()
	if err != nil {
		report.State = domain.StateAborted
		report.Outcome = domain.OutcomeAborted
		log.Debug("run aborted", "error", err)
	} else {
		report.State = domain.StateDone
		log.Info("run finished", "outcome", report.Outcome, "took", report.Duration())
	}

	s.flush(ctx, report, log)
	return report, err
}

func (s *IngestService) run(ctx context.Context, report *domain.RunReport, log *slog.Logger) error {
	// Guard
	s.reporter.Step("Checking store %s for existing files...", s.cfg.StoreID)
	report.ExistingFiles = s.guard.CheckPopulated(ctx, s.cfg.StoreID)
	report.State = domain.StateGuardChecked
	if report.ExistingFiles > 0 {
		s.reporter.Success("Store already contains %d files, skipping ingestion.", report.ExistingFiles)
		report.Outcome = domain.OutcomeSkipped
		return nil
	}

	// List
	logger.Section("List")
	s.reporter.Step("Fetching docs tree from %s...", s.cfg.Repo)
	start := s.now()
	candidates, err := s.lister.ListDocuments(ctx, s.cfg.Repo, s.cfg.Filter)
	if err != nil {
		return err
	}
	report.Summary.Listed = len(candidates)
	report.State = domain.StateListed
	log.Debug("listing done", "candidates", len(candidates), "took", s.now().Sub(start))

	if len(candidates) == 0 {
		s.reporter.Warn("No documentation files found under %s", s.cfg.Filter.PathPrefix)
		report.Outcome = domain.OutcomeNoCandidates
		return nil
	}
	s.reporter.Success("Found %d documentation files", len(candidates))

	// Fetch
	logger.Section("Download")
	s.reporter.Step("Downloading %d files...", len(candidates))
	start = s.now()
	docs, failed, err := s.fetcher.FetchAll(ctx, s.cfg.Repo, candidates)
	s.observePhase(domain.PhaseFetch, s.now().Sub(start))
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	report.Summary.Downloaded = len(docs)
	report.Summary.DownloadFailed = failed
	report.State = domain.StateFetched

	if len(docs) == 0 {
		return fmt.Errorf("%w (%d candidates)", domain.ErrZeroYield, len(candidates))
	}
	s.reporter.Success("Downloaded %d files (%d failed)", len(docs), failed)

	// Parse
	parsed := make([]domain.ParsedDocument, 0, len(docs))
	for _, doc := range docs {
		parsed = append(parsed, s.parser.Parse(doc))
	}

	// Upload
	logger.Section("Upload")
	s.reporter.Step("Uploading %d files to store...", len(parsed))
	start = s.now()
	outcomes, err := s.uploader.UploadAll(ctx, s.cfg.StoreID, parsed)
	s.observePhase(domain.PhaseUpload, s.now().Sub(start))
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Success {
			report.Summary.Uploaded++
		} else {
			report.Summary.UploadFailed++
		}
	}
	report.State = domain.StateUploaded

	s.reporter.Success("Upload complete! %d uploaded, %d failed.",
		report.Summary.Uploaded, report.Summary.UploadFailed)
	report.Outcome = domain.OutcomeCompleted
	return nil
}

func (s *IngestService) observePhase(phase domain.Phase, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObservePhase(phase, d)
	}
}

// flush records the terminal report and publishes metrics.
// It runs even when ctx is cancelled; failures are only logged.
func (s *IngestService) flush(ctx context.Context, report *domain.RunReport, log *slog.Logger) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveRun(report)

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if err := s.metrics.Flush(flushCtx, report.RunID); err != nil {
		log.Warn("metrics push failed", "error", err)
	}
}
