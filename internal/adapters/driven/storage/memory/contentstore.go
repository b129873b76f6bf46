package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// storedFile is a file held by the in-memory content store.
type storedFile struct {
	name      string
	content   []byte
	mediaType string
	metadata  map[string]any
}

// ContentStore is an in-memory implementation of driven.ContentStore.
// It backs --dry-run; files are indexed instantly.
type ContentStore struct {
	mu     sync.RWMutex
	stores map[string][]storedFile
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		stores: make(map[string][]storedFile),
	}
}

// FileCount returns the number of files in a store.
func (s *ContentStore) FileCount(_ context.Context, storeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stores[storeID]), nil
}

// UploadAndPoll stores a copy of the file and its metadata.
func (s *ContentStore) UploadAndPoll(ctx context.Context, storeID string, file domain.FilePayload, metadata map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := storedFile{
		name:      file.Name,
		content:   slices.Clone(file.Content),
		mediaType: file.MediaType,
		metadata:  maps.Clone(metadata),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[storeID] = append(s.stores[storeID], stored)
	return nil
}
