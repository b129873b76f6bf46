package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/logger"
)

// captureLog redirects non-verbose logger output into a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetVerbose(false)
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

// fakeRepo implements driven.SourceRepository.
type fakeRepo struct {
	entries   []domain.TreeEntry
	listErr   error
	contents  map[string]string
	fetchErrs map[string]error
	delay     time.Duration

	mu         sync.Mutex
	listCalls  int
	fetchCalls map[string]int

	inFlight atomic.Int32
	peak     atomic.Int32
}

func newFakeRepo(paths ...string) *fakeRepo {
	r := &fakeRepo{
		contents:   make(map[string]string),
		fetchErrs:  make(map[string]error),
		fetchCalls: make(map[string]int),
	}
	for _, p := range paths {
		r.entries = append(r.entries, domain.TreeEntry{Path: p, Kind: domain.EntryBlob})
		r.contents[p] = "# " + p + "\n"
	}
	return r
}

func (r *fakeRepo) ListTree(_ context.Context, _ domain.RepoRef) ([]domain.TreeEntry, error) {
	r.mu.Lock()
	r.listCalls++
	r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.entries, nil
}

func (r *fakeRepo) FetchContent(ctx context.Context, _ domain.RepoRef, path string) (string, error) {
	cur := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		old := r.peak.Load()
		if cur <= old || r.peak.CompareAndSwap(old, cur) {
			break
		}
	}

	r.mu.Lock()
	r.fetchCalls[path]++
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := r.fetchErrs[path]; err != nil {
		return "", err
	}
	return r.contents[path], nil
}

func (r *fakeRepo) calls(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetchCalls[path]
}

type fakeUpload struct {
	storeID  string
	file     domain.FilePayload
	metadata map[string]any
}

// fakeStore implements driven.ContentStore.
type fakeStore struct {
	count      int
	countErr   error
	uploadErrs map[string]error

	mu      sync.Mutex
	uploads []fakeUpload
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploadErrs: make(map[string]error)}
}

func (s *fakeStore) FileCount(_ context.Context, _ string) (int, error) {
	return s.count, s.countErr
}

func (s *fakeStore) UploadAndPoll(_ context.Context, storeID string, file domain.FilePayload, metadata map[string]any) error {
	s.mu.Lock()
	s.uploads = append(s.uploads, fakeUpload{storeID: storeID, file: file, metadata: metadata})
	s.mu.Unlock()
	return s.uploadErrs[file.Name]
}

func (s *fakeStore) uploaded() []fakeUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fakeUpload(nil), s.uploads...)
}

type progressCall struct {
	phase     domain.Phase
	completed int
	total     int
}

// recordingReporter implements driven.ProgressReporter.
type recordingReporter struct {
	mu       sync.Mutex
	steps    []string
	success  []string
	warnings []string
	progress []progressCall
}

func (r *recordingReporter) Step(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Success(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Progress(phase domain.Phase, completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, progressCall{phase: phase, completed: completed, total: total})
}

func (r *recordingReporter) progressFor(phase domain.Phase) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, p := range r.progress {
		if p.phase == phase {
			out = append(out, p.completed)
		}
	}
	return out
}

// fakeMetrics implements driven.PipelineMetrics.
type fakeMetrics struct {
	mu       sync.Mutex
	items    map[string]int
	phases   []domain.Phase
	runs     []*domain.RunReport
	flushed  []string
	flushErr error
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{items: make(map[string]int)}
}

func (m *fakeMetrics) ObserveItem(phase domain.Phase, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[fmt.Sprintf("%s/%t", phase, success)]++
}

func (m *fakeMetrics) ObservePhase(phase domain.Phase, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases = append(m.phases, phase)
}

func (m *fakeMetrics) ObserveRun(report *domain.RunReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, report)
}

func (m *fakeMetrics) Flush(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushed = append(m.flushed, runID)
	return m.flushErr
}

// stubParser implements driven.ContentParser with a fixed URL scheme.
type stubParser struct{}

func (stubParser) Parse(doc domain.FetchedDocument) domain.ParsedDocument {
	return domain.ParsedDocument{
		Path:        doc.Path,
		RawContent:  doc.RawContent,
		Body:        doc.RawContent,
		FrontMatter: map[string]any{},
		SourceURL:   "https://example.com/" + doc.Path,
	}
}
