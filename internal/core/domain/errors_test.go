package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrConfiguration", ErrConfiguration},
		{"ErrListing", ErrListing},
		{"ErrZeroYield", ErrZeroYield},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotFound", ErrNotFound},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrTransport", ErrTransport},
		{"ErrFetchItem", ErrFetchItem},
		{"ErrUploadItem", ErrUploadItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestItemError(t *testing.T) {
	t.Run("fetch item error matches fetch sentinel and cause", func(t *testing.T) {
		cause := errors.New("status 500")
		err := NewItemError(PhaseFetch, "docs/a.mdx", cause)

		assert.ErrorIs(t, err, ErrFetchItem)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrUploadItem)
		assert.Equal(t, "fetch docs/a.mdx: status 500", err.Error())
	})

	t.Run("upload item error matches upload sentinel", func(t *testing.T) {
		err := NewItemError(PhaseUpload, "docs/b.md", errors.New("indexing failed"))

		assert.ErrorIs(t, err, ErrUploadItem)
		assert.NotErrorIs(t, err, ErrFetchItem)
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewItemError(PhaseUpload, "x", errors.New("boom")))

		var itemErr *ItemError
		assert.ErrorAs(t, err, &itemErr)
		assert.Equal(t, "x", itemErr.Path)
	})
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"configuration", fmt.Errorf("%w: MXBAI_API_KEY is not set", ErrConfiguration), true},
		{"listing not found", fmt.Errorf("%w: %w", ErrListing, ErrNotFound), true},
		{"listing rate limited", fmt.Errorf("%w: %w", ErrListing, ErrRateLimited), true},
		{"zero yield", ErrZeroYield, true},
		{"cancelled", context.Canceled, true},
		{"fetch item", NewItemError(PhaseFetch, "a", errors.New("x")), false},
		{"upload item", NewItemError(PhaseUpload, "a", errors.New("x")), false},
		{"unclassified", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}
