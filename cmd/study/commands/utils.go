// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config/storage/client setup and small display utilities
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/Trppypata/master-plumbing-study/internal/config"
	"github.com/Trppypata/master-plumbing-study/internal/llm"
	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
	"github.com/Trppypata/master-plumbing-study/internal/storage/sqlite"
	"github.com/Trppypata/master-plumbing-study/internal/study"
)

// loadConfig loads .env and the environment configuration.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// openStorage opens the configured database.
func openStorage(cfg *config.Config) (*sqlite.Storage, error) {
	store, err := sqlite.NewStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// newStudyService builds the study service over storage.
func newStudyService(store *sqlite.Storage, cfg *config.Config) *study.Service {
	return study.NewService(store, cfg.DueCardLimit)
}

// newLLMClient builds the OpenAI client from configuration. Fails with a
// configuration error when no API key is set.
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	return llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
}

// newSearcher builds the retrieval searcher for a client and storage.
func newSearcher(client *llm.Client, store *sqlite.Storage, cfg *config.Config) *retrieval.Searcher {
	return retrieval.NewSearcher(client, store.Chunks(), retrieval.Options{
		MatchThreshold: cfg.MatchThreshold,
		MatchCount:     cfg.MatchCount,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatDue renders a due date relative to now.
func formatDue(t time.Time) string {
	if t.IsZero() {
		return "now"
	}

	diff := time.Until(t)
	switch {
	case diff <= 0:
		return "overdue"
	case diff < time.Hour:
		return fmt.Sprintf("in %dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("in %dh", int(diff.Hours()))
	default:
		return fmt.Sprintf("in %dd", int(diff.Hours()/24))
	}
}
