package mxbai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/docsync/internal/core/ports/driven"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ContentStore  = (*Client)(nil)
	_ driven.StoreSearcher = (*Client)(nil)
)

// Store is the subset of a store resource docsync reads.
type Store struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FileCounts struct {
		Pending    int `json:"pending"`
		InProgress int `json:"in_progress"`
		Cancelled  int `json:"cancelled"`
		Completed  int `json:"completed"`
		Failed     int `json:"failed"`
		Total      int `json:"total"`
	} `json:"file_counts"`
}

// GetStore retrieves a store by ID or name.
func (c *Client) GetStore(ctx context.Context, storeID string) (*Store, error) {
	var store Store
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stores/"+url.PathEscape(storeID), nil, &store); err != nil {
		return nil, fmt.Errorf("get store %s: %w", storeID, err)
	}
	return &store, nil
}

// FileCount returns the total number of files in the store.
func (c *Client) FileCount(ctx context.Context, storeID string) (int, error) {
	store, err := c.GetStore(ctx, storeID)
	if err != nil {
		return 0, err
	}
	return store.FileCounts.Total, nil
}
