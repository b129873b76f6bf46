package driven

import "github.com/custodia-labs/docsync/internal/core/domain"

// ContentParser turns fetched documents into upload-ready documents.
// Parsing is pure and total: it never fails and never drops a document.
type ContentParser interface {
	// Parse extracts front matter and derives the public source URL.
	Parse(doc domain.FetchedDocument) domain.ParsedDocument
}
