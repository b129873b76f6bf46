package domain

import (
	"errors"
	"time"
)

// Phase names a bounded-concurrency stage of the pipeline.
type Phase string

const (
	// PhaseFetch downloads candidate content.
	PhaseFetch Phase = "fetch"

	// PhaseUpload submits parsed documents to the content store.
	PhaseUpload Phase = "upload"
)

func (p Phase) itemErr() error {
	switch p {
	case PhaseFetch:
		return ErrFetchItem
	case PhaseUpload:
		return ErrUploadItem
	default:
		return errors.New(string(p) + " failed")
	}
}

// RunState is a state of the ingestion state machine.
type RunState string

const (
	// StateInit is the state before the store is checked.
	StateInit RunState = "init"

	// StateGuardChecked means the store population is known.
	StateGuardChecked RunState = "guard_checked"

	// StateListed means candidates were enumerated.
	StateListed RunState = "listed"

	// StateFetched means every download has settled.
	StateFetched RunState = "fetched"

	// StateUploaded means every upload has settled.
	StateUploaded RunState = "uploaded"

	// StateDone is terminal: the run completed, was skipped or found nothing.
	StateDone RunState = "done"

	// StateAborted is terminal: a fatal error stopped the run.
	StateAborted RunState = "aborted"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	// OutcomeCompleted means every candidate was attempted.
	OutcomeCompleted Outcome = "completed"

	// OutcomeSkipped means the store was already populated.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeNoCandidates means the listing matched nothing.
	OutcomeNoCandidates Outcome = "no_candidates"

	// OutcomeAborted means a fatal error stopped the run.
	OutcomeAborted Outcome = "aborted"
)

// PipelineSummary holds the per-phase counts of a run.
type PipelineSummary struct {
	Listed         int
	Downloaded     int
	DownloadFailed int
	Uploaded       int
	UploadFailed   int
}

// Consistent reports whether the counts of a completed run add up.
func (s PipelineSummary) Consistent() bool {
	return s.Uploaded+s.UploadFailed == s.Downloaded &&
		s.Downloaded+s.DownloadFailed == s.Listed
}

// RunReport is the terminal record of one ingestion run.
type RunReport struct {
	RunID         string
	State         RunState
	Outcome       Outcome
	ExistingFiles int
	Summary       PipelineSummary
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Duration returns the wall time of the run.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
