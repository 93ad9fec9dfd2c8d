// ABOUTME: CLI command for readiness, progress summary, streak, and calendar
// ABOUTME: Aggregates the study statistics views in one place
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCalendar bool

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Long: `Show exam readiness, per-status card counts, and the current streak.

Examples:
  study stats
  study stats --calendar`,
		RunE: runStats,
	}

	cmd.Flags().BoolVar(&statsCalendar, "calendar", false, "Show the 7-week activity calendar")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	readiness, summary, err := svc.Readiness()
	if err != nil {
		return err
	}

	streak, err := svc.Streak()
	if err != nil {
		return err
	}

	today, err := svc.Today()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exam readiness: %d%%\n", readiness)
	fmt.Fprintf(out, "Cards: %d total - %d mastered, %d learning, %d needs review, %d new\n",
		summary.Total, summary.Mastered, summary.Learning, summary.NeedsReview, summary.New)
	fmt.Fprintf(out, "Today: %d studied, %d correct\n", today.CardsStudied, today.CardsCorrect)
	fmt.Fprintf(out, "Streak: %d day(s)\n", streak)

	if !statsCalendar {
		return nil
	}

	calendar, err := svc.Calendar()
	if err != nil {
		return err
	}

	levels := []string{" ", ".", ":", "o", "#"}
	var sb strings.Builder
	for i, day := range calendar {
		sb.WriteString(levels[day.Level])
		if (i+1)%7 == 0 {
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(out, "\nLast 7 weeks (oldest first):\n%s", sb.String())

	return nil
}
