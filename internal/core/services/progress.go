package services

import (
	"sync/atomic"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
)

// progressEvery is how many completions pass between progress lines.
const progressEvery = 10

// progressTracker counts settled items of a phase across workers.
type progressTracker struct {
	phase    domain.Phase
	total    int
	done     atomic.Int64
	reporter driven.ProgressReporter
}

func newProgressTracker(phase domain.Phase, total int, reporter driven.ProgressReporter) *progressTracker {
	return &progressTracker{phase: phase, total: total, reporter: reporter}
}

// complete records one settled item, success or failure.
// A line is reported every progressEvery completions and on the last one.
func (p *progressTracker) complete() int {
	n := int(p.done.Add(1))
	if n%progressEvery == 0 || n == p.total {
		p.reporter.Progress(p.phase, n, p.total)
	}
	return n
}

// nopReporter discards all progress.
type nopReporter struct{}

func (nopReporter) Step(string, ...any)             {}
func (nopReporter) Success(string, ...any)          {}
func (nopReporter) Warn(string, ...any)             {}
func (nopReporter) Progress(domain.Phase, int, int) {}

func reporterOrNop(r driven.ProgressReporter) driven.ProgressReporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}
