package driven

import "github.com/custodia-labs/docsync/internal/core/domain"

// ProgressReporter receives human-readable pipeline progress.
// Implementations must be safe for concurrent use.
type ProgressReporter interface {
	// Step announces a pipeline stage.
	Step(format string, args ...any)

	// Success reports a completed stage.
	Success(format string, args ...any)

	// Warn reports a recoverable problem, usually naming a path.
	Warn(format string, args ...any)

	// Progress reports completed out of total items for a phase.
	Progress(phase domain.Phase, completed, total int)
}
