// ABOUTME: Tests for document metadata persistence
// ABOUTME: Covers status transitions through the ingestion lifecycle

package sqlite

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

func TestDocumentStore_CreateAndGet(t *testing.T) {
	storage := newTestStorage(t)

	doc := &models.Document{
		ID:       uuid.New().String(),
		Name:     "plumbing-code.pdf",
		FilePath: "/tmp/plumbing-code.pdf",
		FileType: "pdf",
		FileSize: 1024,
		Status:   models.DocStatusProcessing,
	}
	if err := storage.Documents().Create(doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := storage.Documents().Get(doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for existing document")
	}
	if got.Name != "plumbing-code.pdf" || got.Status != models.DocStatusProcessing {
		t.Errorf("Get() = %+v", got)
	}
	if got.FileSize != 1024 {
		t.Errorf("FileSize = %d", got.FileSize)
	}
}

func TestDocumentStore_GetMissing(t *testing.T) {
	storage := newTestStorage(t)

	got, err := storage.Documents().Get("no-such-id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for missing document", got)
	}
}

func TestDocumentStore_MarkReady(t *testing.T) {
	storage := newTestStorage(t)
	id := mustCreateDocument(t, storage, "doc")

	if err := storage.Documents().MarkError(id, "transient"); err != nil {
		t.Fatalf("MarkError() error = %v", err)
	}
	if err := storage.Documents().MarkReady(id, 7); err != nil {
		t.Fatalf("MarkReady() error = %v", err)
	}

	got, err := storage.Documents().Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != models.DocStatusReady {
		t.Errorf("Status = %q, want ready", got.Status)
	}
	if got.TotalChunks != 7 {
		t.Errorf("TotalChunks = %d, want 7", got.TotalChunks)
	}
	if got.ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want cleared", got.ErrorMessage)
	}
}

func TestDocumentStore_MarkError(t *testing.T) {
	storage := newTestStorage(t)
	id := mustCreateDocument(t, storage, "doc")

	if err := storage.Documents().MarkError(id, "no text content found"); err != nil {
		t.Fatalf("MarkError() error = %v", err)
	}

	got, err := storage.Documents().Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != models.DocStatusError {
		t.Errorf("Status = %q, want error", got.Status)
	}
	if got.ErrorMessage != "no text content found" {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
}

func TestDocumentStore_List(t *testing.T) {
	storage := newTestStorage(t)

	mustCreateDocument(t, storage, "first")
	mustCreateDocument(t, storage, "second")

	docs, err := storage.Documents().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("List() = %d documents, want 2", len(docs))
	}
}
