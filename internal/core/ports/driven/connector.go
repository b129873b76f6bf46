package driven

import (
	"context"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// SourceRepository reads a remote source-control repository.
// The GitHub connector implements this interface.
type SourceRepository interface {
	// ListTree returns every entry of the tree at ref, recursively.
	// Errors must match domain.ErrNotFound when the branch does not exist,
	// domain.ErrRateLimited when throttled and domain.ErrTransport otherwise.
	ListTree(ctx context.Context, ref domain.RepoRef) ([]domain.TreeEntry, error)

	// FetchContent returns the raw text of the file at path.
	// A single call is made; implementations must not retry.
	FetchContent(ctx context.Context, ref domain.RepoRef, path string) (string, error)
}
