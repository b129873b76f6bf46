package mxbai

import (
	"errors"
	"fmt"
)

// Indexing errors.
var (
	// ErrIndexingFailed indicates the store reported a failed file.
	ErrIndexingFailed = errors.New("mxbai: indexing failed")

	// ErrIndexingCancelled indicates the store cancelled a file.
	ErrIndexingCancelled = errors.New("mxbai: indexing cancelled")

	// ErrPollTimeout indicates a file did not settle within the poll timeout.
	ErrPollTimeout = errors.New("mxbai: timed out waiting for indexing")
)

// APIError is a non-2xx response from the Mixedbread API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mxbai: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("mxbai: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}
