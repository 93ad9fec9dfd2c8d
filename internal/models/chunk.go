// ABOUTME: DocumentChunk represents a contiguous slice of a source document
// ABOUTME: Chunks carry their embedding vector and ingest-order index
package models

import "time"

// DocumentChunk is one embeddable slice of a document's text. Indices are
// assigned sequentially from 0 during ingestion and never change afterwards.
type DocumentChunk struct {
	ChunkID    string    `json:"chunk_id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	PageNumber *int      `json:"page_number,omitempty"`
	Embedding  []float64 `json:"embedding,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchResult is a ranked chunk match for a query. Query-scoped, never persisted.
type SearchResult struct {
	ChunkID      string  `json:"chunk_id"`
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	Content      string  `json:"content"`
	PageNumber   *int    `json:"page_number,omitempty"`
	Similarity   float64 `json:"similarity"`
}
