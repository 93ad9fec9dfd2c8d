// ABOUTME: Tests for the document ingestion pipeline using a fake embedder
// ABOUTME: Verifies batching, persistence, and error status transitions

package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Trppypata/master-plumbing-study/internal/chunker"
	"github.com/Trppypata/master-plumbing-study/internal/llm"
	"github.com/Trppypata/master-plumbing-study/internal/models"
	"github.com/Trppypata/master-plumbing-study/internal/storage/sqlite"
)

type fakeEmbedder struct {
	batches [][]string
	err     error
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]llm.EmbeddingResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, texts)

	results := make([]llm.EmbeddingResult, len(texts))
	for i := range texts {
		results[i] = llm.EmbeddingResult{Vector: []float64{float64(len(texts[i])), 1}, TokensUsed: 4}
	}
	return results, nil
}

func newTestPipeline(t *testing.T, embedder Embedder, batchSize int) (*Pipeline, *sqlite.Storage) {
	t.Helper()

	storage, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	c, err := chunker.New(10, 2) // 40-char windows keep fixtures small
	if err != nil {
		t.Fatalf("chunker.New() error = %v", err)
	}

	return NewPipeline(storage, embedder, c, batchSize), storage
}

func TestIngestText(t *testing.T) {
	embedder := &fakeEmbedder{}
	pipeline, storage := newTestPipeline(t, embedder, 2)

	text := strings.Repeat("Water seeks its own level in every pipe run. ", 6)
	result, err := pipeline.IngestText(context.Background(), "hydraulics", text)
	if err != nil {
		t.Fatalf("IngestText() error = %v", err)
	}

	if result.ChunksCreated < 2 {
		t.Fatalf("ChunksCreated = %d, want several", result.ChunksCreated)
	}
	if result.TokensUsed != result.ChunksCreated*4 {
		t.Errorf("TokensUsed = %d, want %d", result.TokensUsed, result.ChunksCreated*4)
	}

	// Batch size 2 means multiple calls, none larger than the batch
	if len(embedder.batches) < 2 {
		t.Errorf("embedder saw %d batches, want several", len(embedder.batches))
	}
	for i, b := range embedder.batches {
		if len(b) > 2 {
			t.Errorf("batch %d has %d texts, exceeds batch size", i, len(b))
		}
	}

	doc, err := storage.Documents().Get(result.DocumentID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Status != models.DocStatusReady {
		t.Errorf("document status = %q, want ready", doc.Status)
	}
	if doc.TotalChunks != result.ChunksCreated {
		t.Errorf("TotalChunks = %d, want %d", doc.TotalChunks, result.ChunksCreated)
	}

	chunks, err := storage.Chunks().GetByDocument(result.DocumentID)
	if err != nil {
		t.Fatalf("GetByDocument() error = %v", err)
	}
	if len(chunks) != result.ChunksCreated {
		t.Fatalf("stored %d chunks, want %d", len(chunks), result.ChunksCreated)
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		// The fake encodes each text's length in its vector
		if len(chunk.Embedding) != 2 || chunk.Embedding[0] != float64(len(chunk.Content)) {
			t.Errorf("chunk %d embedding %v does not match content length %d", i, chunk.Embedding, len(chunk.Content))
		}
	}
}

func TestIngestText_PageMarkers(t *testing.T) {
	pipeline, storage := newTestPipeline(t, &fakeEmbedder{}, 0)

	text := "[PAGE 2] Traps hold a seal. [PAGE 5] Vents protect it."
	result, err := pipeline.IngestText(context.Background(), "paged", text)
	if err != nil {
		t.Fatalf("IngestText() error = %v", err)
	}

	chunks, err := storage.Chunks().GetByDocument(result.DocumentID)
	if err != nil {
		t.Fatalf("GetByDocument() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].PageNumber == nil || *chunks[0].PageNumber != 2 {
		t.Errorf("chunk 0 page = %v, want 2", chunks[0].PageNumber)
	}
	if chunks[1].PageNumber == nil || *chunks[1].PageNumber != 5 {
		t.Errorf("chunk 1 page = %v, want 5", chunks[1].PageNumber)
	}
}

func TestIngestText_EmptyText(t *testing.T) {
	pipeline, storage := newTestPipeline(t, &fakeEmbedder{}, 0)

	_, err := pipeline.IngestText(context.Background(), "blank", "   \n\t  ")
	if err == nil {
		t.Fatal("expected error for empty text")
	}

	docs, listErr := storage.Documents().List()
	if listErr != nil {
		t.Fatalf("List() error = %v", listErr)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want the failed record", len(docs))
	}
	if docs[0].Status != models.DocStatusError {
		t.Errorf("document status = %q, want error", docs[0].Status)
	}
	if docs[0].ErrorMessage != "no text content found" {
		t.Errorf("ErrorMessage = %q", docs[0].ErrorMessage)
	}
}

func TestIngestText_EmbeddingFailure(t *testing.T) {
	pipeline, storage := newTestPipeline(t, &fakeEmbedder{err: errors.New("upstream down")}, 0)

	_, err := pipeline.IngestText(context.Background(), "doomed", "Some perfectly fine text to ingest.")
	if err == nil {
		t.Fatal("expected error when embedding fails")
	}

	docs, listErr := storage.Documents().List()
	if listErr != nil {
		t.Fatalf("List() error = %v", listErr)
	}
	if docs[0].Status != models.DocStatusError {
		t.Errorf("document status = %q, want error", docs[0].Status)
	}
	if docs[0].ErrorMessage != "embedding failed" {
		t.Errorf("ErrorMessage = %q", docs[0].ErrorMessage)
	}
}

func TestDeleteDocument(t *testing.T) {
	pipeline, storage := newTestPipeline(t, &fakeEmbedder{}, 0)

	result, err := pipeline.IngestText(context.Background(), "doc", "Short but valid study text here.")
	if err != nil {
		t.Fatalf("IngestText() error = %v", err)
	}

	if err := pipeline.DeleteDocument(result.DocumentID); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}

	doc, err := storage.Documents().Get(result.DocumentID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc != nil {
		t.Error("document survived deletion")
	}

	count, err := storage.Chunks().CountAll()
	if err != nil {
		t.Fatalf("CountAll() error = %v", err)
	}
	if count != 0 {
		t.Errorf("chunk count = %d after delete, want 0", count)
	}
}
