// ABOUTME: CLI command to show the prioritized study queue
// ABOUTME: needs_review first, then new, learning, mastered; earliest due first
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queueSubject string
	queueLimit   int
)

// NewQueueCmd creates the queue command.
func NewQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show cards in study priority order",
		Long: `Show flashcards ordered for study. Cards needing review come first,
then unseen cards, then learning and mastered cards; within each tier
the most overdue card sorts first.

Examples:
  study queue
  study queue --subject plumbing-code --limit 10`,
		RunE: runQueue,
	}

	cmd.Flags().StringVar(&queueSubject, "subject", "", "Filter to one subject")
	cmd.Flags().IntVar(&queueLimit, "limit", 20, "Maximum cards to show")

	return cmd
}

func runQueue(cmd *cobra.Command, args []string) error {
	if queueLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", queueLimit)
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

	svc := newStudyService(store, cfg)
	queue, err := svc.StudyQueue(queueSubject)
	if err != nil {
		return err
	}

	if len(queue) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cards yet. Add some with 'study card'.")
		return nil
	}

	if len(queue) > queueLimit {
		queue = queue[:queueLimit]
	}

	for i, entry := range queue {
		status := "new"
		due := "now"
		if entry.Progress != nil {
			status = string(entry.Progress.Status)
			due = formatDue(entry.Progress.NextReviewAt)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. [%-12s %-8s] %s  (%s)\n",
			i+1, status, due, truncate(entry.Card.Question, 60), entry.Card.ID)
	}

	return nil
}
