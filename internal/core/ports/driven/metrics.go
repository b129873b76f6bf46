package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// PipelineMetrics records run telemetry. Optional: services accept nil.
type PipelineMetrics interface {
	// ObserveItem counts one settled item of a phase.
	ObserveItem(phase domain.Phase, success bool)

	// ObservePhase records how long a phase took.
	ObservePhase(phase domain.Phase, d time.Duration)

	// ObserveRun records the terminal report of a run.
	ObserveRun(report *domain.RunReport)

	// Flush publishes the collected metrics, if a sink is configured.
	Flush(ctx context.Context, runID string) error
}
