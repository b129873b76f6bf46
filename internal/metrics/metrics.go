// Package metrics records ingestion telemetry with Prometheus.
//
// Each run gets its own registry. docsync is a batch job, so metrics are
// pushed to a Pushgateway when the run ends instead of being scraped.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.PipelineMetrics = (*Recorder)(nil)

const (
	namespace = "docsync"

	// JobName is the Pushgateway job label.
	JobName = "docsync"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Recorder collects pipeline metrics for one run.
type Recorder struct {
	registry *prometheus.Registry
	pushURL  string

	documents     *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	existingFiles prometheus.Gauge
	runDuration   prometheus.Gauge
}

// NewRecorder creates a recorder. An empty pushURL disables Flush.
func NewRecorder(pushURL string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pushURL:  pushURL,
		documents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Documents settled per phase and outcome",
			},
			[]string{"phase", "outcome"},
		),
		phaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of pipeline phases in seconds",
				Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"phase"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Ingestion runs by outcome",
			},
			[]string{"outcome"},
		),
		existingFiles: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_existing_files",
				Help:      "Files found in the content store before the run",
			},
		),
		runDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of the last run in seconds",
			},
		),
	}
}

// ObserveItem counts one settled document.
func (r *Recorder) ObserveItem(phase domain.Phase, success bool) {
	outcome := outcomeFailure
	if success {
		outcome = outcomeSuccess
	}
	r.documents.WithLabelValues(string(phase), outcome).Inc()
}

// ObservePhase records a phase duration.
func (r *Recorder) ObservePhase(phase domain.Phase, d time.Duration) {
	r.phaseDuration.WithLabelValues(string(phase)).Observe(d.Seconds())
}

// ObserveRun records the terminal report.
func (r *Recorder) ObserveRun(report *domain.RunReport) {
	if report == nil {
		return
	}
	r.runs.WithLabelValues(string(report.Outcome)).Inc()
	r.existingFiles.Set(float64(report.ExistingFiles))
	r.runDuration.Set(report.Duration().Seconds())
}

// Flush pushes all metrics to the Pushgateway, grouped by run ID.
func (r *Recorder) Flush(ctx context.Context, runID string) error {
	if r.pushURL == "" {
		return nil
	}
	err := push.New(r.pushURL, JobName).
		Gatherer(r.registry).
		Grouping("run_id", runID).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
