package mxbai

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// Chunk type discriminators.
const (
	chunkTypeText  = "text"
	chunkTypeImage = "image_url"
	chunkTypeAudio = "audio_url"
	chunkTypeVideo = "video_url"
)

type searchRequest struct {
	Query            string        `json:"query"`
	StoreIdentifiers []string      `json:"store_identifiers"`
	TopK             int           `json:"top_k"`
	SearchOptions    searchOptions `json:"search_options"`
}

type searchOptions struct {
	ReturnMetadata bool `json:"return_metadata"`
}

type searchResponse struct {
	Data []scoredChunk `json:"data"`
}

// scoredChunk is the union of the text, image, audio and video chunk shapes.
type scoredChunk struct {
	Type              string         `json:"type"`
	Score             float64        `json:"score"`
	Filename          string         `json:"filename"`
	Text              string         `json:"text"`
	Transcription     string         `json:"transcription"`
	OCRText           string         `json:"ocr_text"`
	Summary           string         `json:"summary"`
	Metadata          map[string]any `json:"metadata"`
	GeneratedMetadata map[string]any `json:"generated_metadata"`
}

// toDomain resolves the chunk variant from its type. A variant without its
// own text falls back to the summary, then to ChunkOther.
func (c scoredChunk) toDomain() domain.ScoredChunk {
	out := domain.ScoredChunk{
		Score:    c.Score,
		Filename: c.Filename,
		Metadata: make(map[string]any, len(c.Metadata)+len(c.GeneratedMetadata)),
	}
	maps.Copy(out.Metadata, c.Metadata)
	maps.Copy(out.Metadata, c.GeneratedMetadata)

	switch c.Type {
	case chunkTypeText:
		out.Kind, out.Content = domain.ChunkText, c.Text
	case chunkTypeAudio, chunkTypeVideo:
		out.Kind, out.Content = domain.ChunkTranscript, c.Transcription
	case chunkTypeImage:
		out.Kind, out.Content = domain.ChunkRecognizedText, c.OCRText
	}
	if out.Content == "" && c.Summary != "" {
		out.Kind, out.Content = domain.ChunkSummary, c.Summary
	}
	if out.Content == "" {
		out.Kind = domain.ChunkOther
	}
	return out
}

// Search runs a semantic search across stores with metadata returned.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.ScoredChunk, error) {
	req := searchRequest{
		Query:            query.Query,
		StoreIdentifiers: query.StoreIDs,
		TopK:             query.TopK,
		SearchOptions:    searchOptions{ReturnMetadata: true},
	}

	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/stores/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search stores: %w", err)
	}

	chunks := make([]domain.ScoredChunk, 0, len(resp.Data))
	for _, chunk := range resp.Data {
		chunks = append(chunks, chunk.toDomain())
	}
	return chunks, nil
}
