// ABOUTME: RAG tutor: retrieve relevant chunks, assemble context, ask the LLM
// ABOUTME: Answers ungrounded when retrieval finds nothing or is unavailable
package tutor

import (
	"context"
	"fmt"

	"github.com/Trppypata/master-plumbing-study/internal/retrieval"
)

const systemPrompt = "You are a helpful study tutor. Answer the student's question concisely. " +
	"When context from their uploaded documents is provided, ground your answer in it and " +
	"stay consistent with it."

// Chat runs a chat completion against the LLM.
type Chat interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Answer is a tutor response with positional source citations. Grounded is
// false when the answer was produced without retrieved context.
type Answer struct {
	Response  string   `json:"response"`
	Citations []string `json:"citations,omitempty"`
	Grounded  bool     `json:"grounded"`
}

// Tutor answers study questions, augmented with document context when the
// retrieval subsystem has any to offer.
type Tutor struct {
	searcher *retrieval.Searcher
	chat     Chat
}

// New creates a Tutor. The searcher may be nil when retrieval is not
// configured; the tutor then always answers ungrounded.
func New(searcher *retrieval.Searcher, chat Chat) *Tutor {
	return &Tutor{searcher: searcher, chat: chat}
}

// Ask answers a question. Retrieval is best effort: when it fails or finds
// nothing, the question goes to the LLM without context rather than
// surfacing an error.
func (t *Tutor) Ask(ctx context.Context, question string) (*Answer, error) {
	results := t.searcher.Search(ctx, question)

	userPrompt := question
	if contextBlock := retrieval.FormatContext(results); contextBlock != "" {
		userPrompt = fmt.Sprintf("%s\n\nQuestion: %s", contextBlock, question)
	}

	response, err := t.chat.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("tutor completion: %w", err)
	}

	return &Answer{
		Response:  response,
		Citations: retrieval.Citations(results),
		Grounded:  len(results) > 0,
	}, nil
}
