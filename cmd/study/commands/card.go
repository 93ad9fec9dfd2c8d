// ABOUTME: CLI command to add flashcards
// ABOUTME: Cards are the unit the scheduler and exam sampler operate on
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

var cardSubject string

// NewCardCmd creates the card command.
func NewCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card <question> <answer>",
		Short: "Add a flashcard",
		Long: `Add a flashcard with a question and answer.

Examples:
  study card "What holds a trap seal?" "2-4 inches of standing water"
  study card --subject plumbing-code "Minimum drain slope for 3\" pipe?" "1/4 inch per foot"`,
		Args: cobra.ExactArgs(2),
		RunE: runCard,
	}

	cmd.Flags().StringVar(&cardSubject, "subject", "", "Subject the card belongs to")

	return cmd
}

func runCard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	card := &models.Flashcard{
		SubjectID: cardSubject,
		Question:  args[0],
		Answer:    args[1],
	}

	if err := store.Cards().Save(card); err != nil {
		return fmt.Errorf("saving card: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", card.ID)
	return nil
}
