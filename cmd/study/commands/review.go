// ABOUTME: CLI command to record a flashcard review result
// ABOUTME: Applies the spaced repetition scheduler and reports the new state
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

var reviewWrong bool

// NewReviewCmd creates the review command.
func NewReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <card-id>",
		Short: "Record a review result for a card",
		Long: `Record whether a card was answered correctly. The scheduler updates
the card's status and next due date.

Examples:
  study review 2f6c...            # answered correctly
  study review --wrong 2f6c...    # missed it`,
		Args: cobra.ExactArgs(1),
		RunE: runReview,
	}

	cmd.Flags().BoolVar(&reviewWrong, "wrong", false, "The answer was incorrect")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	card, err := store.Cards().Get(args[0])
	if err != nil {
		return fmt.Errorf("loading card: %w", err)
	}
	if card == nil {
		return fmt.Errorf("no card with ID %s", args[0])
	}

	svc := newStudyService(store, cfg)
	progress, err := svc.RecordStudyResult(models.StudyResult{
		FlashcardID: card.ID,
		WasCorrect:  !reviewWrong,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Card %s: %s, next review %s (%d/%d correct)\n",
		truncate(card.Question, 40), progress.Status, formatDue(progress.NextReviewAt),
		progress.TimesCorrect, progress.TimesReviewed)
	return nil
}
