package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors represent pipeline failures.
// Fatal errors abort a run; item errors are recovered per document.
var (
	// ErrConfiguration indicates missing or invalid credentials or settings.
	// Detected before any network call.
	ErrConfiguration = errors.New("configuration error")

	// ErrListing indicates the source tree could not be enumerated.
	ErrListing = errors.New("listing failed")

	// ErrZeroYield indicates every download failed although candidates existed.
	ErrZeroYield = errors.New("no files were successfully downloaded")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Listing causes.

	// ErrNotFound indicates the branch or repository does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the remote API signalled throttling.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransport indicates any other network or HTTP failure.
	ErrTransport = errors.New("transport failure")

	// Item errors.

	// ErrFetchItem indicates one document's content could not be retrieved.
	ErrFetchItem = errors.New("fetch failed")

	// ErrUploadItem indicates one document could not be submitted or indexed.
	ErrUploadItem = errors.New("upload failed")
)

// ItemError is a recoverable failure scoped to a single document.
type ItemError struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap exposes both the phase sentinel and the underlying cause.
func (e *ItemError) Unwrap() []error {
	return []error{e.Phase.itemErr(), e.Err}
}

// NewItemError wraps err as a per-item failure for path.
func NewItemError(phase Phase, path string, err error) *ItemError {
	return &ItemError{Phase: phase, Path: path, Err: err}
}

// IsFatal reports whether err must terminate the run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var itemErr *ItemError
	if errors.As(err, &itemErr) {
		return false
	}
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrListing) ||
		errors.Is(err, ErrZeroYield) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrInvalidInput)
}
