// ABOUTME: CLI command to sample a practice exam from the card pool
// ABOUTME: Uniform seeded sampling so a session can be reproduced
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/exam"
	"github.com/Trppypata/master-plumbing-study/internal/models"
)

var (
	examCount   int
	examSubject string
	examSeed    uint64
)

// NewExamCmd creates the exam command.
func NewExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Sample a practice exam",
		Long: `Draw a uniform random sample of flashcards as a practice exam.

Examples:
  study exam --count 10
  study exam --subject plumbing-code --seed 42`,
		RunE: runExam,
	}

	cmd.Flags().IntVar(&examCount, "count", 10, "Number of questions")
	cmd.Flags().StringVar(&examSubject, "subject", "", "Filter to one subject")
	cmd.Flags().Uint64Var(&examSeed, "seed", 0, "Shuffle seed (0 uses the current time)")

	return cmd
}

func runExam(cmd *cobra.Command, args []string) error {
	if examCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", examCount)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Cards().ListWithProgress(examSubject)
	if err != nil {
		return fmt.Errorf("listing cards: %w", err)
	}

	cards := make([]models.Flashcard, len(entries))
	for i, e := range entries {
		cards[i] = e.Card
	}

	seed := examSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sample := exam.NewSampler(seed).Sample(cards, examCount)
	if len(sample) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cards to sample. Add some with 'study card'.")
		return nil
	}

	for i, card := range sample {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  (%s)\n", i+1, card.Question, card.ID)
	}

	return nil
}
