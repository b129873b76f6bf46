package domain

import "strings"

// EntryKind is the kind of a repository tree entry.
type EntryKind string

const (
	// EntryBlob is a file.
	EntryBlob EntryKind = "blob"

	// EntryTree is a directory.
	EntryTree EntryKind = "tree"

	// EntryCommit is a submodule reference.
	EntryCommit EntryKind = "commit"
)

// RepoRef identifies a revision of a source repository.
type RepoRef struct {
	Owner  string
	Repo   string
	Branch string
}

// String returns owner/repo/branch.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo + "/" + r.Branch
}

// SourceFilter selects which tree entries become candidates.
type SourceFilter struct {
	// PathPrefix is matched with strings.HasPrefix (e.g. "docs/").
	PathPrefix string

	// Extensions are allowed suffixes including the dot (e.g. ".mdx").
	Extensions []string
}

// Matches reports whether an entry passes the filter.
// Only blobs can match.
func (f SourceFilter) Matches(path string, kind EntryKind) bool {
	if kind != EntryBlob || path == "" {
		return false
	}
	if !strings.HasPrefix(path, f.PathPrefix) {
		return false
	}
	for _, ext := range f.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TreeEntry is one entry of a recursive tree listing.
type TreeEntry struct {
	Path string
	Kind EntryKind
	Size int
}

// DocumentCandidate is a listed path that passed the filter.
// Paths are not de-duplicated; duplicates are processed independently.
type DocumentCandidate struct {
	Path string
	Kind EntryKind
}

// FetchedDocument is raw content downloaded for a candidate.
type FetchedDocument struct {
	Path       string
	RawContent string
}

// ParsedDocument is a fetched document with front matter and public URL.
type ParsedDocument struct {
	Path       string
	RawContent string

	// Body is RawContent without the front matter block.
	Body string

	// FrontMatter holds the parsed front matter fields. Never nil.
	FrontMatter map[string]any

	// SourceURL is the canonical public documentation URL.
	SourceURL string
}

// UploadMetadata returns {source_url, ...frontMatter}.
// Front matter keys override source_url on collision.
func (d ParsedDocument) UploadMetadata() map[string]any {
	md := make(map[string]any, len(d.FrontMatter)+1)
	md["source_url"] = d.SourceURL
	for k, v := range d.FrontMatter {
		md[k] = v
	}
	return md
}

// FileName returns the last path segment, or "file.mdx" when empty.
func (d ParsedDocument) FileName() string {
	name := d.Path[strings.LastIndex(d.Path, "/")+1:]
	if name == "" {
		return "file.mdx"
	}
	return name
}

// FilePayload is a named file submitted to the content store.
type FilePayload struct {
	Name      string
	Content   []byte
	MediaType string
}

// MediaTypeMarkdown is the media type used for documentation uploads.
const MediaTypeMarkdown = "text/markdown"

// UploadOutcome is the result of uploading one document.
type UploadOutcome struct {
	Path    string
	Success bool
	Err     error
}
