// ABOUTME: Document metadata persistence for ingested study material
// ABOUTME: Tracks status transitions through the ingestion pipeline
package sqlite

import (
	"database/sql"
	"time"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// DocumentStore handles document metadata persistence.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Create inserts a new document record.
func (s *DocumentStore) Create(doc *models.Document) error {
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO documents (id, name, file_path, file_type, file_size, status, total_chunks, error_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.FilePath, doc.FileType, doc.FileSize, string(doc.Status), doc.TotalChunks, doc.ErrorMessage, doc.CreatedAt, doc.UpdatedAt)

	return err
}

// Get retrieves a document by ID, or nil when it does not exist.
func (s *DocumentStore) Get(id string) (*models.Document, error) {
	var (
		doc          models.Document
		status       string
		errorMessage sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, name, file_path, file_type, file_size, status, total_chunks, error_message, created_at, updated_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.FilePath, &doc.FileType, &doc.FileSize, &status, &doc.TotalChunks, &errorMessage, &doc.CreatedAt, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc.Status = models.DocumentStatus(status)
	if errorMessage.Valid {
		doc.ErrorMessage = errorMessage.String
	}

	return &doc, nil
}

// List retrieves all documents, newest first.
func (s *DocumentStore) List() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, name, file_path, file_type, file_size, status, total_chunks, error_message, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document

	for rows.Next() {
		var (
			doc          models.Document
			status       string
			errorMessage sql.NullString
		)

		if err := rows.Scan(&doc.ID, &doc.Name, &doc.FilePath, &doc.FileType, &doc.FileSize, &status, &doc.TotalChunks, &errorMessage, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}

		doc.Status = models.DocumentStatus(status)
		if errorMessage.Valid {
			doc.ErrorMessage = errorMessage.String
		}

		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// MarkReady flips a document to ready with its final chunk count.
func (s *DocumentStore) MarkReady(id string, totalChunks int) error {
	_, err := s.db.Exec(`
		UPDATE documents
		SET status = ?, total_chunks = ?, error_message = NULL, updated_at = ?
		WHERE id = ?
	`, string(models.DocStatusReady), totalChunks, time.Now(), id)
	return err
}

// MarkError flips a document to error with a message.
func (s *DocumentStore) MarkError(id string, message string) error {
	_, err := s.db.Exec(`
		UPDATE documents
		SET status = ?, error_message = ?, updated_at = ?
		WHERE id = ?
	`, string(models.DocStatusError), message, time.Now(), id)
	return err
}

// Delete removes a document; chunk rows cascade.
func (s *DocumentStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM documents WHERE id = ?", id)
	return err
}
