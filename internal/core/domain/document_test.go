package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceFilter_Matches(t *testing.T) {
	filter := SourceFilter{PathPrefix: "docs/", Extensions: []string{".md", ".mdx"}}

	tests := []struct {
		name string
		path string
		kind EntryKind
		want bool
	}{
		{"mdx under prefix", "docs/a.mdx", EntryBlob, true},
		{"md under prefix", "docs/nested/b.md", EntryBlob, true},
		{"image under prefix", "docs/a.png", EntryBlob, false},
		{"outside prefix", "notdocs/b.mdx", EntryBlob, false},
		{"directory", "docs/guide.md", EntryTree, false},
		{"submodule", "docs/vendor.md", EntryCommit, false},
		{"empty path", "", EntryBlob, false},
		{"extension without dot match", "docs/readmemd", EntryBlob, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Matches(tt.path, tt.kind))
		})
	}
}

func TestParsedDocument_UploadMetadata(t *testing.T) {
	t.Run("includes source url and front matter", func(t *testing.T) {
		doc := ParsedDocument{
			SourceURL:   "https://nextjs.org/app",
			FrontMatter: map[string]any{"title": "App Router", "nav_title": "App"},
		}

		md := doc.UploadMetadata()

		assert.Equal(t, "https://nextjs.org/app", md["source_url"])
		assert.Equal(t, "App Router", md["title"])
		assert.Equal(t, "App", md["nav_title"])
		assert.Len(t, md, 3)
	})

	t.Run("front matter overrides source url", func(t *testing.T) {
		doc := ParsedDocument{
			SourceURL:   "https://nextjs.org/app",
			FrontMatter: map[string]any{"source_url": "https://example.com/custom"},
		}

		assert.Equal(t, "https://example.com/custom", doc.UploadMetadata()["source_url"])
	})

	t.Run("does not alias front matter", func(t *testing.T) {
		fm := map[string]any{"title": "x"}
		doc := ParsedDocument{FrontMatter: fm}

		doc.UploadMetadata()["title"] = "changed"

		assert.Equal(t, "x", fm["title"])
	})
}

func TestParsedDocument_FileName(t *testing.T) {
	assert.Equal(t, "01-defining-routes.mdx",
		ParsedDocument{Path: "docs/01-app/01-defining-routes.mdx"}.FileName())
	assert.Equal(t, "index.md", ParsedDocument{Path: "index.md"}.FileName())
	assert.Equal(t, "file.mdx", ParsedDocument{Path: "docs/"}.FileName())
	assert.Equal(t, "file.mdx", ParsedDocument{Path: ""}.FileName())
}

func TestPipelineSummary_Consistent(t *testing.T) {
	assert.True(t, PipelineSummary{Listed: 3, Downloaded: 3, Uploaded: 2, UploadFailed: 1}.Consistent())
	assert.True(t, PipelineSummary{}.Consistent())
	assert.False(t, PipelineSummary{Listed: 3, Downloaded: 2, Uploaded: 2}.Consistent())
	assert.False(t, PipelineSummary{Listed: 2, Downloaded: 2, Uploaded: 1}.Consistent())
}

func TestRepoRef_String(t *testing.T) {
	assert.Equal(t, "vercel/next.js/canary", RepoRef{Owner: "vercel", Repo: "next.js", Branch: "canary"}.String())
}
