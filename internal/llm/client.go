// ABOUTME: OpenAI client for embeddings and tutor chat completions
// ABOUTME: Uses text-embedding-3-small at 1536 dimensions, gpt-4o-mini for chat
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Trppypata/master-plumbing-study/internal/faults"
	"github.com/Trppypata/master-plumbing-study/internal/util"
)

const (
	// DefaultChatModel is the default model for tutor chat completions.
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings.
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
	// EmbeddingDimension is the fixed output dimensionality for embeddings.
	EmbeddingDimension = 1536
)

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration for an API key.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     1,
		RetryDelay:     2 * time.Second,
	}
}

// EmbeddingResult is one embedded text with its token cost. For batch calls
// the upstream API reports only an aggregate count, so TokensUsed is the
// total divided evenly across the batch - an approximation, not an exact
// per-item figure.
type EmbeddingResult struct {
	Vector     []float64
	TokensUsed int
}

// Client wraps the OpenAI API for embeddings and chat with retry logic.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a client with default configuration.
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom configuration. A missing
// API key is a configuration error; nothing can be embedded without one.
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &faults.ConfigurationError{Setting: "OPENAI_API_KEY"}
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		api:            openai.NewClientWithConfig(apiCfg),
		chatModel:      chatModel,
		embeddingModel: openai.EmbeddingModel(embeddingModel),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// Embed generates an embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	results, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return EmbeddingResult{}, err
	}
	return results[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call.
// Result order matches input order: results[i] embeds texts[i].
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([]EmbeddingResult, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input:      texts,
			Model:      c.embeddingModel,
			Dimensions: EmbeddingDimension,
		})
		cancel()

		if err != nil {
			lastErr = wrapUpstream("embedding", err)
			continue
		}

		if len(resp.Data) != len(texts) {
			lastErr = &faults.UpstreamError{
				Service: "embedding",
				Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Data)),
			}
			continue
		}

		// The API tags each item with its input index; sort to guarantee
		// result order matches input order.
		data := make([]openai.Embedding, len(resp.Data))
		copy(data, resp.Data)
		sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

		perItemTokens := resp.Usage.TotalTokens / len(texts)

		results := make([]EmbeddingResult, len(data))
		for i, item := range data {
			vector := make([]float64, len(item.Embedding))
			for j, v := range item.Embedding {
				vector[j] = float64(v)
			}
			results[i] = EmbeddingResult{Vector: vector, TokensUsed: perItemTokens}
		}

		return results, nil
	}

	return nil, fmt.Errorf("embedding failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Complete runs a chat completion with a system and user message.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.3,
		})
		cancel()

		if err != nil {
			lastErr = wrapUpstream("chat", err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = &faults.UpstreamError{Service: "chat", Message: "no completion choices returned"}
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// wrapUpstream converts API errors into the shared taxonomy, keeping the
// upstream message when the service returned one.
func wrapUpstream(service string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &faults.UpstreamError{
			Service:    service,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &faults.UpstreamError{Service: service, Err: err}
}
