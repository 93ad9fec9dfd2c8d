// ABOUTME: Best-effort semantic search over ingested document chunks
// ABOUTME: Retrieval failures degrade to empty results, never block the caller
package retrieval

import (
	"context"
	"log"

	"github.com/Trppypata/master-plumbing-study/internal/llm"
	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// Embedder converts query text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (llm.EmbeddingResult, error)
}

// ChunkSearcher runs similarity search over stored chunk vectors.
type ChunkSearcher interface {
	SearchSimilar(queryVector []float64, threshold float64, maxResults int) ([]models.SearchResult, error)
}

// Options bound a similarity query.
type Options struct {
	MatchThreshold float64
	MatchCount     int
}

// DefaultOptions returns the standard retrieval bounds.
func DefaultOptions() Options {
	return Options{MatchThreshold: 0.7, MatchCount: 5}
}

// Searcher embeds a query and looks up the most similar chunks. A nil
// Searcher is the explicit "not configured" state and always returns no
// results.
type Searcher struct {
	embedder Embedder
	store    ChunkSearcher
	opts     Options
}

// NewSearcher creates a Searcher over an embedder and chunk store.
func NewSearcher(embedder Embedder, store ChunkSearcher, opts Options) *Searcher {
	if opts.MatchCount <= 0 {
		opts.MatchCount = DefaultOptions().MatchCount
	}
	return &Searcher{embedder: embedder, store: store, opts: opts}
}

// Search returns the chunks most similar to the query, best effort. Any
// failure along the way is logged and swallowed into an empty result set so
// the surrounding study or chat flow proceeds ungrounded.
func (s *Searcher) Search(ctx context.Context, query string) []models.SearchResult {
	if s == nil {
		return nil
	}

	embedded, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("retrieval: query embedding failed: %v", err)
		return nil
	}

	results, err := s.store.SearchSimilar(embedded.Vector, s.opts.MatchThreshold, s.opts.MatchCount)
	if err != nil {
		log.Printf("retrieval: similarity search failed: %v", err)
		return nil
	}

	return results
}
