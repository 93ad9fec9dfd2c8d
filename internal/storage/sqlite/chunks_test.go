// ABOUTME: Tests for chunk persistence and cosine similarity search
// ABOUTME: Verifies threshold filtering, ordering, tie-breaks, and cascades

package sqlite

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// mustCreateDocument inserts a ready document and returns its ID.
func mustCreateDocument(t *testing.T, storage *Storage, name string) string {
	t.Helper()

	doc := &models.Document{
		ID:     uuid.New().String(),
		Name:   name,
		Status: models.DocStatusReady,
	}
	if err := storage.Documents().Create(doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return doc.ID
}

func TestUpsertChunks_RoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "code-book")

	page := 12
	chunks := []models.DocumentChunk{
		{ChunkIndex: 0, Content: "first", Embedding: []float64{1, 0, 0}},
		{ChunkIndex: 1, Content: "second", PageNumber: &page, Embedding: []float64{0, 1, 0}},
	}

	if err := storage.Chunks().UpsertChunks(docID, chunks); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	got, err := storage.Chunks().GetByDocument(docID)
	if err != nil {
		t.Fatalf("GetByDocument() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}

	if got[0].Content != "first" || got[0].ChunkIndex != 0 {
		t.Errorf("chunk 0 = %+v", got[0])
	}
	if got[0].PageNumber != nil {
		t.Error("chunk 0 should have no page number")
	}
	if got[1].PageNumber == nil || *got[1].PageNumber != 12 {
		t.Errorf("chunk 1 page = %v, want 12", got[1].PageNumber)
	}
	if len(got[1].Embedding) != 3 || got[1].Embedding[1] != 1 {
		t.Errorf("chunk 1 embedding = %v", got[1].Embedding)
	}
}

func TestUpsertChunks_ReingestReplacesInPlace(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "code-book")

	first := []models.DocumentChunk{{ChunkIndex: 0, Content: "old text", Embedding: []float64{1, 0}}}
	if err := storage.Chunks().UpsertChunks(docID, first); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	second := []models.DocumentChunk{{ChunkIndex: 0, Content: "new text", Embedding: []float64{0, 1}}}
	if err := storage.Chunks().UpsertChunks(docID, second); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	got, err := storage.Chunks().GetByDocument(docID)
	if err != nil {
		t.Fatalf("GetByDocument() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1 after re-ingest", len(got))
	}
	if got[0].Content != "new text" {
		t.Errorf("content = %q, want replaced text", got[0].Content)
	}
}

func TestSearchSimilar(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "vent-manual")

	// Orthogonal and near-parallel vectors give predictable similarities.
	chunks := []models.DocumentChunk{
		{ChunkIndex: 0, Content: "exact match", Embedding: []float64{1, 0, 0}},
		{ChunkIndex: 1, Content: "close match", Embedding: []float64{0.9, 0.1, 0}},
		{ChunkIndex: 2, Content: "unrelated", Embedding: []float64{0, 0, 1}},
	}
	if err := storage.Chunks().UpsertChunks(docID, chunks); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	results, err := storage.Chunks().SearchSimilar([]float64{1, 0, 0}, 0.7, 5)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 above threshold", len(results))
	}
	if results[0].Content != "exact match" {
		t.Errorf("top result = %q, want exact match first", results[0].Content)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not sorted descending by similarity")
	}
	if math.Abs(results[0].Similarity-1.0) > 1e-9 {
		t.Errorf("top similarity = %f, want 1.0", results[0].Similarity)
	}
	if results[0].DocumentName != "vent-manual" {
		t.Errorf("DocumentName = %q", results[0].DocumentName)
	}
}

func TestSearchSimilar_CapsResults(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "doc")

	var chunks []models.DocumentChunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, models.DocumentChunk{
			ChunkIndex: i,
			Content:    "chunk",
			Embedding:  []float64{1, 0},
		})
	}
	if err := storage.Chunks().UpsertChunks(docID, chunks); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	results, err := storage.Chunks().SearchSimilar([]float64{1, 0}, 0.5, 3)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want cap of 3", len(results))
	}
}

func TestSearchSimilar_TieBreaksByChunkID(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "doc")

	// Identical vectors force equal similarity; order must come from IDs.
	chunks := []models.DocumentChunk{
		{ChunkID: "id-c", ChunkIndex: 0, Content: "c", Embedding: []float64{1, 0}},
		{ChunkID: "id-a", ChunkIndex: 1, Content: "a", Embedding: []float64{1, 0}},
		{ChunkID: "id-b", ChunkIndex: 2, Content: "b", Embedding: []float64{1, 0}},
	}
	if err := storage.Chunks().UpsertChunks(docID, chunks); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	for run := 0; run < 3; run++ {
		results, err := storage.Chunks().SearchSimilar([]float64{1, 0}, 0.5, 10)
		if err != nil {
			t.Fatalf("SearchSimilar() error = %v", err)
		}
		wantIDs := []string{"id-a", "id-b", "id-c"}
		for i, want := range wantIDs {
			if results[i].ChunkID != want {
				t.Fatalf("run %d position %d = %q, want %q", run, i, results[i].ChunkID, want)
			}
		}
	}
}

func TestSearchSimilar_EmptyStore(t *testing.T) {
	storage := newTestStorage(t)

	results, err := storage.Chunks().SearchSimilar([]float64{1, 0}, 0.7, 5)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty store", len(results))
	}
}

func TestDeleteDocument_CascadesToChunks(t *testing.T) {
	storage := newTestStorage(t)
	docID := mustCreateDocument(t, storage, "doomed")

	chunks := []models.DocumentChunk{{ChunkIndex: 0, Content: "text", Embedding: []float64{1}}}
	if err := storage.Chunks().UpsertChunks(docID, chunks); err != nil {
		t.Fatalf("UpsertChunks() error = %v", err)
	}

	if err := storage.Documents().Delete(docID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := storage.Chunks().CountAll()
	if err != nil {
		t.Fatalf("CountAll() error = %v", err)
	}
	if count != 0 {
		t.Errorf("chunk count = %d after document delete, want 0", count)
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vectors := [][]float64{
		nil,
		{},
		{0.5},
		{1.5, -2.25, 0, math.Pi},
	}

	for _, v := range vectors {
		got := blobToVector(vectorToBlob(v))
		if len(got) != len(v) {
			t.Errorf("round trip changed length: %d != %d", len(got), len(v))
			continue
		}
		for i := range v {
			if got[i] != v[i] {
				t.Errorf("round trip changed value %d: %f != %f", i, got[i], v[i])
			}
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"mismatched lengths", []float64{1, 0}, []float64{1, 0, 0}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}
