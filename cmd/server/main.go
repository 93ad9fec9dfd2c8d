// ABOUTME: Main entry point for the study MCP server with stdio transport
// ABOUTME: Initializes storage, retrieval, tutor, and registers all tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Trppypata/master-plumbing-study/internal/config"
	"github.com/Trppypata/master-plumbing-study/internal/llm"
	"github.com/Trppypata/master-plumbing-study/internal/mcp"
	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
	"github.com/Trppypata/master-plumbing-study/internal/storage/sqlite"
	"github.com/Trppypata/master-plumbing-study/internal/study"
	"github.com/Trppypata/master-plumbing-study/internal/tutor"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, err := sqlite.NewStorage(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	studySvc := study.NewService(store, cfg.DueCardLimit)

	// Retrieval and tutor need an OpenAI key; without one the server still
	// serves the review and readiness tools.
	var (
		searcher   *retrieval.Searcher
		studyTutor *tutor.Tutor
	)
	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Printf("Warning: OPENAI_API_KEY not set - tutor and document search are disabled")
	} else {
		searcher = retrieval.NewSearcher(client, store.Chunks(), retrieval.Options{
			MatchThreshold: cfg.MatchThreshold,
			MatchCount:     cfg.MatchCount,
		})
		studyTutor = tutor.New(searcher, client)
	}

	server := mcpserver.NewMCPServer(
		"Study Tutor",
		"0.1.0",
	)

	mcp.RegisterTools(server, studySvc, searcher, studyTutor)

	log.Println("Study MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
