// ABOUTME: MCP tool handler implementations for the study server
// ABOUTME: Thin adapters from tool arguments onto the study services
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Trppypata/master-plumbing-study/internal/models"
	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
	"github.com/Trppypata/master-plumbing-study/internal/study"
	"github.com/Trppypata/master-plumbing-study/internal/tutor"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	study    *study.Service
	searcher *retrieval.Searcher
	tutor    *tutor.Tutor
}

// AskTutor handles the ask_tutor tool.
func (h *Handlers) AskTutor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	if h.tutor == nil {
		return mcp.NewToolResultError("tutor is not configured (missing OPENAI_API_KEY)"), nil
	}

	answer, err := h.tutor.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("tutor failed: %v", err)), nil
	}

	return marshalResult(answer)
}

// SearchDocuments handles the search_documents tool.
func (h *Handlers) SearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	results := h.searcher.Search(ctx, query)

	response := map[string]interface{}{
		"results":   results,
		"citations": retrieval.Citations(results),
	}

	return marshalResult(response)
}

// RecordReview handles the record_review tool.
func (h *Handlers) RecordReview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	flashcardID, err := request.RequireString("flashcard_id")
	if err != nil {
		return mcp.NewToolResultError("flashcard_id argument is required and must be a string"), nil
	}

	wasCorrect, err := request.RequireBool("was_correct")
	if err != nil {
		return mcp.NewToolResultError("was_correct argument is required and must be a boolean"), nil
	}

	progress, err := h.study.RecordStudyResult(models.StudyResult{
		FlashcardID: flashcardID,
		WasCorrect:  wasCorrect,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording review failed: %v", err)), nil
	}

	return marshalResult(progress)
}

// GetStudyQueue handles the get_study_queue tool.
func (h *Handlers) GetStudyQueue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID := request.GetString("subject_id", "")

	queue, err := h.study.StudyQueue(subjectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building study queue failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{"queue": queue})
}

// GetReadiness handles the get_readiness tool.
func (h *Handlers) GetReadiness(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	readiness, summary, err := h.study.Readiness()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computing readiness failed: %v", err)), nil
	}

	streak, err := h.study.Streak()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computing streak failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"readiness_percent": readiness,
		"summary":           summary,
		"streak_days":       streak,
	}

	return marshalResult(response)
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
