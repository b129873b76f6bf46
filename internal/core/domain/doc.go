// Package domain defines the core entities of the docsync ingestion pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentCandidate: a listed path that passed the source filter
//   - FetchedDocument: raw content downloaded for a candidate
//   - ParsedDocument: content with front matter and a public source URL
//   - UploadOutcome: the result of one upload
//   - RunReport / PipelineSummary: the terminal record of a run
//   - ScoredChunk: a search hit, tagged by the kind of text it carries
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
