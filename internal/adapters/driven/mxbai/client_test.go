package mxbai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

const testKey = "mxb_test"

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{
		APIKey:       testKey,
		BaseURL:      server.URL,
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  500 * time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{APIKey: testKey, BaseURL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
	assert.Equal(t, DefaultPollInterval, c.pollInterval)
	assert.Equal(t, DefaultPollTimeout, c.pollTimeout)
}

func TestFileCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/stores/docs-store", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":          "docs-store",
			"file_counts": map[string]int{"completed": 40, "failed": 2, "total": 42},
		})
	})
	c := newTestClient(t, mux)

	count, err := c.FileCount(context.Background(), "docs-store")

	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestFileCount_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/stores/missing", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Store not found"})
	})
	c := newTestClient(t, mux)

	_, err := c.FileCount(context.Background(), "missing")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Store not found", apiErr.Message)
	assert.Equal(t, "/v1/stores/missing", apiErr.Path)
}

// storeServer simulates upload, attach and a sequence of poll statuses.
func storeServer(t *testing.T, statuses ...string) (*http.ServeMux, *atomic.Int32, *map[string]any) {
	t.Helper()
	var polls atomic.Int32
	attached := map[string]any{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)

		assert.Equal(t, "defining-routes.mdx", header.Filename)
		assert.Equal(t, "text/markdown", header.Header.Get("Content-Type"))
		assert.Equal(t, "# Routes", string(content))
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "file_1", "filename": header.Filename})
	})
	mux.HandleFunc("POST /v1/stores/docs-store/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&attached))
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "file_1", "status": StatusPending})
	})
	mux.HandleFunc("GET /v1/stores/docs-store/files/file_1", func(w http.ResponseWriter, _ *http.Request) {
		n := int(polls.Add(1))
		status := statuses[len(statuses)-1]
		if n <= len(statuses) {
			status = statuses[n-1]
		}
		body := map[string]any{"id": "file_1", "status": status}
		if status == StatusFailed {
			body["last_error"] = map[string]string{"code": "parse", "message": "unsupported file"}
		}
		writeJSON(t, w, http.StatusOK, body)
	})
	return mux, &polls, &attached
}

var routesFile = domain.FilePayload{
	Name:      "defining-routes.mdx",
	Content:   []byte("# Routes"),
	MediaType: domain.MediaTypeMarkdown,
}

func TestUploadAndPoll(t *testing.T) {
	mux, polls, attached := storeServer(t, StatusPending, StatusInProgress, StatusCompleted)
	c := newTestClient(t, mux)

	err := c.UploadAndPoll(context.Background(), "docs-store", routesFile, map[string]any{
		"source_url": "https://nextjs.org/app/routing/defining-routes",
		"title":      "Defining Routes",
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), polls.Load())
	assert.Equal(t, "file_1", (*attached)["file_id"])
	assert.Equal(t, map[string]any{
		"source_url": "https://nextjs.org/app/routing/defining-routes",
		"title":      "Defining Routes",
	}, (*attached)["metadata"])
}

func TestUploadAndPoll_FailedStatus(t *testing.T) {
	mux, _, _ := storeServer(t, StatusInProgress, StatusFailed)
	c := newTestClient(t, mux)

	err := c.UploadAndPoll(context.Background(), "docs-store", routesFile, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexingFailed)
	assert.Contains(t, err.Error(), "unsupported file")
}

func TestUploadAndPoll_CancelledStatus(t *testing.T) {
	mux, _, _ := storeServer(t, StatusCancelled)
	c := newTestClient(t, mux)

	err := c.UploadAndPoll(context.Background(), "docs-store", routesFile, nil)

	assert.ErrorIs(t, err, ErrIndexingCancelled)
}

func TestUploadAndPoll_Timeout(t *testing.T) {
	mux, _, _ := storeServer(t, StatusInProgress)
	c := newTestClient(t, mux)
	c.pollTimeout = 30 * time.Millisecond

	err := c.UploadAndPoll(context.Background(), "docs-store", routesFile, nil)

	assert.ErrorIs(t, err, ErrPollTimeout)
}

func TestUploadAndPoll_UploadRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusRequestEntityTooLarge, map[string]string{"message": "too large"})
	})
	c := newTestClient(t, mux)

	err := c.UploadAndPoll(context.Background(), "docs-store", routesFile, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Equal(t, "too large", apiErr.Message)
}

func TestUploadAndPoll_ContextCancelled(t *testing.T) {
	mux, _, _ := storeServer(t, StatusInProgress)
	c := newTestClient(t, mux)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := c.UploadAndPoll(ctx, "docs-store", routesFile, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch(t *testing.T) {
	var got searchRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/stores/search", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []map[string]any{
			{
				"type": "text", "score": 0.9, "filename": "a.mdx", "text": "routing basics",
				"metadata":           map[string]any{"source_url": "https://nextjs.org/a", "title": "A"},
				"generated_metadata": map[string]any{"title": "Generated"},
			},
			{"type": "audio_url", "score": 0.7, "filename": "talk.mp3", "transcription": "spoken"},
			{"type": "image_url", "score": 0.6, "filename": "diagram.png", "ocr_text": "boxes", "summary": "a diagram"},
			{"type": "image_url", "score": 0.5, "filename": "photo.png", "summary": "a photo"},
			{"type": "video_url", "score": 0.4, "filename": "clip.mp4"},
			{"type": "pdf_page", "score": 0.3, "filename": "guide.pdf", "text": "untagged text"},
		}})
	})
	c := newTestClient(t, mux)

	chunks, err := c.Search(context.Background(), domain.SearchQuery{
		Query:    "routing",
		StoreIDs: []string{"docs-store"},
		TopK:     5,
	})

	require.NoError(t, err)
	assert.Equal(t, "routing", got.Query)
	assert.Equal(t, []string{"docs-store"}, got.StoreIdentifiers)
	assert.Equal(t, 5, got.TopK)
	assert.True(t, got.SearchOptions.ReturnMetadata)

	require.Len(t, chunks, 6)
	assert.Equal(t, domain.ChunkText, chunks[0].Kind)
	assert.Equal(t, "routing basics", chunks[0].Text())
	assert.Equal(t, "https://nextjs.org/a", chunks[0].SourceURL())
	assert.Equal(t, "Generated", chunks[0].Metadata["title"], "generated metadata wins")

	assert.Equal(t, domain.ChunkTranscript, chunks[1].Kind)
	assert.Equal(t, "spoken", chunks[1].Text())
	assert.Equal(t, domain.ChunkRecognizedText, chunks[2].Kind)
	assert.Equal(t, "boxes", chunks[2].Text())
	assert.Equal(t, domain.ChunkSummary, chunks[3].Kind)
	assert.Equal(t, "a photo", chunks[3].Text())
	assert.Equal(t, domain.ChunkOther, chunks[4].Kind)
	assert.Equal(t, domain.NonTextContent, chunks[4].Text())
	assert.Equal(t, domain.ChunkOther, chunks[5].Kind, "unknown type is not probed for fields")
	assert.Equal(t, domain.NonTextContent, chunks[5].Text())
}
