// ABOUTME: Document metadata for ingested study material
// ABOUTME: Tracks processing status through the ingestion pipeline
package models

import "time"

// DocumentStatus is the ingestion state of a document.
type DocumentStatus string

const (
	DocStatusPending    DocumentStatus = "pending"
	DocStatusProcessing DocumentStatus = "processing"
	DocStatusReady      DocumentStatus = "ready"
	DocStatusError      DocumentStatus = "error"
)

// Document is an ingested source document. Chunk rows cascade on delete.
type Document struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	FilePath     string         `json:"file_path,omitempty"`
	FileType     string         `json:"file_type,omitempty"`
	FileSize     int64          `json:"file_size,omitempty"`
	Status       DocumentStatus `json:"status"`
	TotalChunks  int            `json:"total_chunks"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
