// ABOUTME: Document chunk persistence with embedded vectors
// ABOUTME: Vectors stored as little-endian float64 BLOBs, brute-force cosine search
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// ExpectedDimension is the expected vector dimension for OpenAI embeddings.
const ExpectedDimension = 1536

// ChunkStore handles document chunk and embedding persistence.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore.
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// UpsertChunks writes a document's chunks with their vectors in one
// transaction. Chunks are keyed by (document_id, chunk_index) so re-ingesting
// a document replaces its previous chunks in place.
func (s *ChunkStore) UpsertChunks(documentID string, chunks []models.DocumentChunk) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin chunk upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO document_chunks (id, document_id, chunk_index, content, page_number, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, chunk_index) DO UPDATE SET
			content = excluded.content,
			page_number = excluded.page_number,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("prepare chunk upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, chunk := range chunks {
		id := chunk.ChunkID
		if id == "" {
			id = uuid.New().String()
		}

		var pageNumber sql.NullInt64
		if chunk.PageNumber != nil {
			pageNumber = sql.NullInt64{Int64: int64(*chunk.PageNumber), Valid: true}
		}

		if _, err := stmt.Exec(id, documentID, chunk.ChunkIndex, chunk.Content, pageNumber, vectorToBlob(chunk.Embedding), time.Now()); err != nil {
			return fmt.Errorf("upsert chunk %d: %w", chunk.ChunkIndex, err)
		}
	}

	return tx.Commit()
}

// SearchSimilar performs cosine similarity search across all stored chunks.
// Results are filtered to similarity >= threshold, sorted descending by
// similarity, and capped at maxResults. Equal similarities tie-break by
// ascending chunk ID so a fixed input set always yields the same order.
func (s *ChunkStore) SearchSimilar(queryVector []float64, threshold float64, maxResults int) ([]models.SearchResult, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.document_id, d.name, c.content, c.page_number, c.embedding
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult

	for rows.Next() {
		var (
			r          models.SearchResult
			pageNumber sql.NullInt64
			blob       []byte
		)

		if err := rows.Scan(&r.ChunkID, &r.DocumentID, &r.DocumentName, &r.Content, &pageNumber, &blob); err != nil {
			return nil, err
		}

		similarity := CosineSimilarity(queryVector, blobToVector(blob))
		if similarity < threshold {
			continue
		}

		if pageNumber.Valid {
			page := int(pageNumber.Int64)
			r.PageNumber = &page
		}
		r.Similarity = similarity

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ChunkID < results[j].ChunkID
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// GetByDocument retrieves all chunks for a document in index order.
func (s *ChunkStore) GetByDocument(documentID string) ([]models.DocumentChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, document_id, chunk_index, content, page_number, embedding, created_at
		FROM document_chunks
		WHERE document_id = ?
		ORDER BY chunk_index ASC
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.DocumentChunk

	for rows.Next() {
		var (
			chunk      models.DocumentChunk
			pageNumber sql.NullInt64
			blob       []byte
		)

		if err := rows.Scan(&chunk.ChunkID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content, &pageNumber, &blob, &chunk.CreatedAt); err != nil {
			return nil, err
		}

		if pageNumber.Valid {
			page := int(pageNumber.Int64)
			chunk.PageNumber = &page
		}
		chunk.Embedding = blobToVector(blob)

		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// DeleteByDocument removes all chunks for a document.
func (s *ChunkStore) DeleteByDocument(documentID string) error {
	_, err := s.db.Exec("DELETE FROM document_chunks WHERE document_id = ?", documentID)
	return err
}

// CountAll returns the total number of stored chunks.
func (s *ChunkStore) CountAll() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM document_chunks").Scan(&count)
	return count, err
}

// vectorToBlob converts a float64 slice to a binary blob.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob back to a float64 slice.
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
