// ABOUTME: Document ingestion pipeline: chunk, embed in batches, persist
// ABOUTME: Tracks document status from processing through ready or error
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/chunker"
	"github.com/Trppypata/master-plumbing-study/internal/llm"
	"github.com/Trppypata/master-plumbing-study/internal/models"
	"github.com/Trppypata/master-plumbing-study/internal/storage/sqlite"
)

// DefaultBatchSize is the number of chunks embedded per API call.
const DefaultBatchSize = 20

// Embedder batch-embeds chunk texts, preserving input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([]llm.EmbeddingResult, error)
}

// Result summarizes one ingested document.
type Result struct {
	DocumentID    string
	ChunksCreated int
	TokensUsed    int
}

// Pipeline ingests raw document text into searchable chunk vectors.
type Pipeline struct {
	storage   *sqlite.Storage
	embedder  Embedder
	chunker   *chunker.Chunker
	batchSize int
}

// NewPipeline creates an ingestion pipeline. A nil chunker uses defaults;
// a non-positive batch size uses DefaultBatchSize.
func NewPipeline(storage *sqlite.Storage, embedder Embedder, c *chunker.Chunker, batchSize int) *Pipeline {
	if c == nil {
		c = chunker.Default()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		storage:   storage,
		embedder:  embedder,
		chunker:   c,
		batchSize: batchSize,
	}
}

// IngestText processes one document's extracted text end to end: create the
// document record, chunk (page-aware when [PAGE N] markers are present),
// embed each batch, and store chunks with their vectors. The document ends
// in status ready, or error with a message on any failure.
func (p *Pipeline) IngestText(ctx context.Context, name, text string) (*Result, error) {
	doc := &models.Document{
		ID:       uuid.New().String(),
		Name:     name,
		FileType: "text",
		FileSize: int64(len(text)),
		Status:   models.DocStatusProcessing,
	}
	if err := p.storage.Documents().Create(doc); err != nil {
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	var chunks []chunker.Chunk
	if chunker.HasPageMarkers(text) {
		chunks = p.chunker.SplitPages(text)
	} else {
		chunks = p.chunker.Split(text)
	}

	if len(chunks) == 0 {
		_ = p.storage.Documents().MarkError(doc.ID, "no text content found")
		return nil, fmt.Errorf("no text content found in %q", name)
	}

	rows := make([]models.DocumentChunk, 0, len(chunks))
	tokensUsed := 0

	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		embedded, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			_ = p.storage.Documents().MarkError(doc.ID, "embedding failed")
			return nil, fmt.Errorf("embedding batch starting at chunk %d: %w", start, err)
		}

		for i, c := range batch {
			rows = append(rows, models.DocumentChunk{
				ChunkID:    uuid.New().String(),
				DocumentID: doc.ID,
				ChunkIndex: c.Index,
				Content:    c.Content,
				PageNumber: c.PageNumber,
				Embedding:  embedded[i].Vector,
			})
			tokensUsed += embedded[i].TokensUsed
		}
	}

	if err := p.storage.Chunks().UpsertChunks(doc.ID, rows); err != nil {
		_ = p.storage.Documents().MarkError(doc.ID, "failed to save chunks")
		return nil, fmt.Errorf("saving chunks: %w", err)
	}

	if err := p.storage.Documents().MarkReady(doc.ID, len(rows)); err != nil {
		return nil, fmt.Errorf("marking document ready: %w", err)
	}

	return &Result{
		DocumentID:    doc.ID,
		ChunksCreated: len(rows),
		TokensUsed:    tokensUsed,
	}, nil
}

// DeleteDocument removes a document; its chunks cascade.
func (p *Pipeline) DeleteDocument(documentID string) error {
	return p.storage.Documents().Delete(documentID)
}
