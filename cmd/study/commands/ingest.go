// ABOUTME: CLI command to ingest study documents into the vector index
// ABOUTME: Reads extracted text files, optionally with [PAGE N] markers
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/chunker"
	"github.com/Trppypata/master-plumbing-study/internal/ingest"
)

var ingestName string

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a document for retrieval",
		Long: `Ingest a text document: chunk it, embed the chunks, and store them
for semantic search. Text containing [PAGE N] markers is chunked
page by page so citations can reference page numbers.

Examples:
  study ingest notes.txt
  study ingest --name "Plumbing Code Ch. 7" extracted/chapter7.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestName, "name", "", "Display name for the document (defaults to file name)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	name := ingestName
	if name == "" {
		name = filepath.Base(args[0])
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

	c, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(store, client, c, cfg.EmbedBatchSize)

	fmt.Fprintf(cmd.OutOrStdout(), "Ingesting %q (~%d tokens)...\n", name, chunker.EstimateTokens(string(data)))

	result, err := pipeline.IngestText(cmd.Context(), name, string(data))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %q: %d chunks, ~%d tokens (document %s)\n",
		name, result.ChunksCreated, result.TokensUsed, result.DocumentID)
	return nil
}
