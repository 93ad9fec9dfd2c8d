// ABOUTME: MCP tool definitions and registration for the study server
// ABOUTME: Exposes tutor, document search, and review tools over MCP
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
	"github.com/Trppypata/master-plumbing-study/internal/study"
	"github.com/Trppypata/master-plumbing-study/internal/tutor"
)

// RegisterTools registers all study tools with the MCP server.
func RegisterTools(server *mcpserver.MCPServer, studySvc *study.Service, searcher *retrieval.Searcher, studyTutor *tutor.Tutor) *Handlers {
	handlers := &Handlers{
		study:    studySvc,
		searcher: searcher,
		tutor:    studyTutor,
	}

	// 1. ask_tutor - answer a study question, grounded in uploaded documents when possible
	server.AddTool(mcp.Tool{
		Name:        "ask_tutor",
		Description: "Ask the study tutor a question. Answers are grounded in uploaded study documents when relevant context is found, with positional source citations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The study question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskTutor)

	// 2. search_documents - semantic search over ingested chunks
	server.AddTool(mcp.Tool{
		Name:        "search_documents",
		Description: "Search uploaded study documents for chunks semantically similar to a query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocuments)

	// 3. record_review - apply one flashcard review result
	server.AddTool(mcp.Tool{
		Name:        "record_review",
		Description: "Record a flashcard review result. Updates the card's spaced repetition status and next due date.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"flashcard_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the reviewed flashcard",
				},
				"was_correct": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the answer was correct",
				},
			},
			Required: []string{"flashcard_id", "was_correct"},
		},
	}, handlers.RecordReview)

	// 4. get_study_queue - cards ordered for study
	server.AddTool(mcp.Tool{
		Name:        "get_study_queue",
		Description: "Get flashcards ordered for study: needs_review first, then new, learning, mastered; earliest due first within each tier.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional subject filter",
				},
			},
		},
	}, handlers.GetStudyQueue)

	// 5. get_readiness - exam readiness score and progress summary
	server.AddTool(mcp.Tool{
		Name:        "get_readiness",
		Description: "Get the exam readiness percentage, per-status progress summary, and current study streak.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetReadiness)

	return handlers
}
