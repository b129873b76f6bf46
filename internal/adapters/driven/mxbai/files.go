package mxbai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/logger"
)

// Store file statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// File is an uploaded file object.
type File struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int    `json:"bytes"`
}

// StoreFile is a file attached to a store.
type StoreFile struct {
	ID        string         `json:"id"`
	StoreID   string         `json:"store_id"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error,omitempty"`
}

type attachRequest struct {
	FileID   string         `json:"file_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UploadFile uploads content as a multipart file.
func (c *Client) UploadFile(ctx context.Context, file domain.FilePayload) (*File, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/files", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out File
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return &out, nil
}

// AttachFile adds an uploaded file to a store with metadata.
func (c *Client) AttachFile(ctx context.Context, storeID, fileID string, metadata map[string]any) (*StoreFile, error) {
	var out StoreFile
	path := "/v1/stores/" + url.PathEscape(storeID) + "/files"
	if err := c.doJSON(ctx, http.MethodPost, path, attachRequest{FileID: fileID, Metadata: metadata}, &out); err != nil {
		return nil, fmt.Errorf("attach file %s: %w", fileID, err)
	}
	return &out, nil
}

// GetStoreFile retrieves the indexing state of a store file.
func (c *Client) GetStoreFile(ctx context.Context, storeID, fileID string) (*StoreFile, error) {
	var out StoreFile
	path := "/v1/stores/" + url.PathEscape(storeID) + "/files/" + url.PathEscape(fileID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get store file %s: %w", fileID, err)
	}
	return &out, nil
}

// PollStoreFile waits until a store file reaches a terminal status.
// A failed or cancelled file is an error, as is exceeding the poll timeout.
func (c *Client) PollStoreFile(ctx context.Context, storeID, fileID string) (*StoreFile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		sf, err := c.GetStoreFile(ctx, storeID, fileID)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrPollTimeout, fileID)
			}
			return nil, err
		}

		switch sf.Status {
		case StatusCompleted:
			return sf, nil
		case StatusFailed:
			if sf.LastError != nil && sf.LastError.Message != "" {
				return sf, fmt.Errorf("%w: %s", ErrIndexingFailed, sf.LastError.Message)
			}
			return sf, ErrIndexingFailed
		case StatusCancelled:
			return sf, ErrIndexingCancelled
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrPollTimeout, fileID)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// UploadAndPoll uploads a file, attaches it to the store and waits until it
// is indexed.
func (c *Client) UploadAndPoll(ctx context.Context, storeID string, file domain.FilePayload, metadata map[string]any) error {
	uploaded, err := c.UploadFile(ctx, file)
	if err != nil {
		return err
	}
	attached, err := c.AttachFile(ctx, storeID, uploaded.ID, metadata)
	if err != nil {
		return err
	}

	fileID := attached.ID
	if fileID == "" {
		fileID = uploaded.ID
	}
	if attached.Status == StatusCompleted {
		return nil
	}

	if _, err := c.PollStoreFile(ctx, storeID, fileID); err != nil {
		return err
	}
	logger.Debug("file indexed", "store", storeID, "file_id", fileID, "name", file.Name)
	return nil
}
