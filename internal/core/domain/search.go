package domain

// ChunkKind tags which text-bearing field a scored chunk carries.
type ChunkKind int

const (
	// ChunkOther carries no extractable text.
	ChunkOther ChunkKind = iota

	// ChunkText is a plain text chunk.
	ChunkText

	// ChunkTranscript is an audio or video transcription.
	ChunkTranscript

	// ChunkRecognizedText is OCR output from an image.
	ChunkRecognizedText

	// ChunkSummary is a generated summary.
	ChunkSummary
)

// NonTextContent is returned for chunks without extractable text.
const NonTextContent = "Non-text content"

// ScoredChunk is one search hit returned by the content store.
type ScoredChunk struct {
	Kind     ChunkKind
	Score    float64
	Filename string

	// Content is the text for the chunk's Kind.
	Content string

	// Metadata is the stored metadata merged with generated metadata.
	Metadata map[string]any
}

// Text returns the chunk text, or NonTextContent when there is none.
func (c ScoredChunk) Text() string {
	switch c.Kind {
	case ChunkText, ChunkTranscript, ChunkRecognizedText, ChunkSummary:
		if c.Content != "" {
			return c.Content
		}
	}
	return NonTextContent
}

// SourceURL returns the source_url metadata value if present.
func (c ScoredChunk) SourceURL() string {
	s, _ := c.Metadata["source_url"].(string)
	return s
}

// SearchQuery describes a store search.
type SearchQuery struct {
	Query    string
	StoreIDs []string
	TopK     int
}
