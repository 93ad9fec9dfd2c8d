// ABOUTME: Unified Storage layer wrapping all SQLite stores
// ABOUTME: Owns the database lifecycle and hands out per-entity stores
package sqlite

import (
	"fmt"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// Storage manages all persistent data for the study system.
type Storage struct {
	db        *DB
	chunks    *ChunkStore
	documents *DocumentStore
	cards     *CardStore
	progress  *ProgressStore
	stats     *StatsStore
}

// NewStorage initializes storage at the given database path.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing).
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:        db,
		chunks:    NewChunkStore(db),
		documents: NewDocumentStore(db),
		cards:     NewCardStore(db),
		progress:  NewProgressStore(db),
		stats:     NewStatsStore(db),
	}
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Chunks returns the chunk/vector store.
func (s *Storage) Chunks() *ChunkStore { return s.chunks }

// Documents returns the document store.
func (s *Storage) Documents() *DocumentStore { return s.documents }

// Cards returns the flashcard store.
func (s *Storage) Cards() *CardStore { return s.cards }

// Progress returns the review record store.
func (s *Storage) Progress() *ProgressStore { return s.progress }

// Stats returns the study history and daily stats store.
func (s *Storage) Stats() *StatsStore { return s.stats }

// Summary counts cards by scheduling status. Cards with no progress record
// count as new.
func (s *Storage) Summary() (models.ProgressSummary, error) {
	total, err := s.cards.Count()
	if err != nil {
		return models.ProgressSummary{}, err
	}

	mastered, err := s.progress.CountByStatus(models.StatusMastered)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	learning, err := s.progress.CountByStatus(models.StatusLearning)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	needsReview, err := s.progress.CountByStatus(models.StatusNeedsReview)
	if err != nil {
		return models.ProgressSummary{}, err
	}

	newCards := total - (mastered + learning + needsReview)
	if newCards < 0 {
		newCards = 0
	}

	return models.ProgressSummary{
		Total:       total,
		Mastered:    mastered,
		Learning:    learning,
		NeedsReview: needsReview,
		New:         newCards,
	}, nil
}
