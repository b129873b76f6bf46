package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search the content store", searchCmd.Short)
}

func TestSearchCmd_HasTopKFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, errOut, code := execute(t, "search")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "accepts 1 arg(s)")
}

func TestSearchCmd_PrintsResults(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.chunks = []domain.ScoredChunk{
		{
			Kind:     domain.ChunkText,
			Score:    0.91234,
			Filename: "defining-routes.mdx",
			Content:  "Routes are defined\nby folders.",
			Metadata: map[string]any{"source_url": "https://nextjs.org/app/routing/defining-routes"},
		},
		{Kind: domain.ChunkOther, Score: 0.5, Filename: "diagram.png"},
	}

	out, _, code := execute(t, "search", "--top-k", "2", "how do routes work")

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "how do routes work", ts.search.query)
	assert.Equal(t, 2, ts.search.topK)
	assert.Contains(t, out, "[1] 0.912  defining-routes.mdx")
	assert.Contains(t, out, "https://nextjs.org/app/routing/defining-routes")
	assert.Contains(t, out, "Routes are defined by folders.")
	assert.Contains(t, out, "[2] 0.500  diagram.png")
	assert.Contains(t, out, domain.NonTextContent)
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, code := execute(t, "search", "nothing")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.chunks = []domain.ScoredChunk{{
		Kind:     domain.ChunkSummary,
		Score:    0.7,
		Filename: "a.mdx",
		Content:  "summary text",
		Metadata: map[string]any{"title": "A"},
	}}

	out, _, code := execute(t, "search", "--json", "q")

	require.Equal(t, ExitOK, code)
	var parsed struct {
		Results []searchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Results, 1)
	assert.Equal(t, "summary text", parsed.Results[0].Text)
	assert.Equal(t, "A", parsed.Results[0].Metadata["title"])
}

func TestSearchCmd_ServiceError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.err = errors.New("store unavailable")

	_, errOut, code := execute(t, "search", "q")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "search failed: store unavailable")
}

func TestSearchCmd_NeedsOnlyStoreSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.cfg.GitHubToken = ""

	_, _, code := execute(t, "search", "q")

	assert.Equal(t, ExitOK, code)
}

func TestSearchCmd_InvalidStoreSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.cfg.StoreID = ""

	_, errOut, code := execute(t, "search", "q")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "MXBAI_STORE_ID")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b c", snippet("a\n b\t\tc "))

	long := strings.Repeat("x", snippetLength+10)
	got := snippet(long)
	assert.Equal(t, snippetLength+3, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
