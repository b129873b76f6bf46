package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsync/internal/core/domain"
)

// snippetLength caps the chunk text printed per result.
const snippetLength = 200

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the content store",
	Long: `Runs a semantic search against the configured Mixedbread store and prints
the matching chunks with their score, file name and source URL.
Useful to verify an ingestion.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateStore(); err != nil {
		return err
	}
	if searchFactory == nil {
		return errors.New("search service not configured")
	}

	svc, err := searchFactory(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	chunks, err := svc.Search(cmd.Context(), args[0], searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, chunks)
	}
	outputSearchTable(cmd, chunks)
	return nil
}

// searchResult is the JSON shape of one hit.
type searchResult struct {
	Score    float64        `json:"score"`
	Filename string         `json:"filename"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func outputSearchJSON(cmd *cobra.Command, chunks []domain.ScoredChunk) error {
	results := make([]searchResult, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, searchResult{
			Score:    c.Score,
			Filename: c.Filename,
			Text:     c.Text(),
			Metadata: c.Metadata,
		})
	}
	data, err := json.MarshalIndent(map[string]any{"results": results}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, chunks []domain.ScoredChunk) {
	w := cmd.OutOrStdout()
	if len(chunks) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintln(w, "Results:")
	fmt.Fprintln(w)
	for i, c := range chunks {
		fmt.Fprintf(w, "[%d] %.3f  %s\n", i+1, c.Score, c.Filename)
		if url := c.SourceURL(); url != "" {
			fmt.Fprintf(w, "    %s\n", url)
		}
		fmt.Fprintf(w, "    %s\n\n", snippet(c.Text()))
	}
}

// snippet flattens whitespace and truncates to snippetLength runes.
func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + "..."
}
