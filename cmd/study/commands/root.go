// ABOUTME: Root CLI command wiring all study subcommands
// ABOUTME: Flashcard review, document ingestion, search, tutor, and stats
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Flashcard study system with spaced repetition and a document-grounded tutor",
		Long: `Study is a flashcard and exam-prep tool.

It schedules card reviews with spaced repetition, ingests study documents
into a searchable vector index, and answers questions grounded in that
material.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		NewCardCmd(),
		NewIngestCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewReviewCmd(),
		NewQueueCmd(),
		NewExamCmd(),
		NewStatsCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
