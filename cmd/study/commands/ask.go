// ABOUTME: CLI command to ask the tutor a question
// ABOUTME: Answers are grounded in ingested documents when context is found
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Trppypata/master-plumbing-study/internal/tutor"
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the tutor a question",
		Long: `Ask the tutor a study question. When ingested documents contain
relevant material the answer is grounded in it and cites sources;
otherwise the tutor answers from general knowledge.

Examples:
  study ask "Why does every fixture need a trap?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	t := tutor.New(newSearcher(client, store, cfg), client)

	answer, err := t.Ask(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Response)

	if len(answer.Citations) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for i, c := range answer.Citations {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, c)
		}
	}

	return nil
}
