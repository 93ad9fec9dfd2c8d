// ABOUTME: CLI command for semantic search over ingested documents
// ABOUTME: Prints ranked chunk matches with similarity and citations
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search ingested documents",
		Long: `Search ingested documents for chunks semantically similar to a query.

Examples:
  study search "trap seal depth"
  study search "fixture unit sizing"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	searcher := newSearcher(client, store, cfg)
	results := searcher.Search(cmd.Context(), args[0])

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching chunks found.")
		return nil
	}

	citations := retrieval.Citations(results)
	for i, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%.2f] %s\n   %s\n", i+1, r.Similarity, citations[i], truncate(r.Content, 160))
	}

	return nil
}
