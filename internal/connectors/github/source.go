package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SourceRepository = (*Client)(nil)

// ListTree returns every entry of the branch's tree, recursively.
func (c *Client) ListTree(ctx context.Context, ref domain.RepoRef) ([]domain.TreeEntry, error) {
	tree, err := c.GetTree(ctx, ref.Owner, ref.Repo, ref.Branch)
	if err != nil {
		if IsNotFound(err) {
			err = fmt.Errorf("%w '%s': %w", ErrBranchNotFound, ref.Branch, err)
		}
		return nil, toDomainError(err)
	}

	if tree.GetTruncated() {
		logger.Warn("github tree listing truncated, some entries are missing",
			"repo", ref.String(), "entries", len(tree.Entries))
	}

	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, domain.TreeEntry{
			Path: e.GetPath(),
			Kind: domain.EntryKind(e.GetType()),
			Size: e.GetSize(),
		})
	}
	return entries, nil
}

// FetchContent returns the raw text of path at the branch of ref.
func (c *Client) FetchContent(ctx context.Context, ref domain.RepoRef, path string) (string, error) {
	content, err := c.GetRawContent(ctx, ref.Owner, ref.Repo, path, ref.Branch)
	if err != nil {
		return "", toDomainError(err)
	}
	return content, nil
}

// toDomainError classifies connector errors for the core.
func toDomainError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case IsRateLimited(err):
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	case IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
}
