// ABOUTME: Review record persistence keyed by flashcard ID
// ABOUTME: Upsert-on-primary-key gives last-writer-wins for concurrent reviews
package sqlite

import (
	"database/sql"
	"time"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// ProgressStore handles per-card review state.
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a new ProgressStore.
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// Get retrieves the review record for a card, or nil when the card has
// never been studied.
func (s *ProgressStore) Get(flashcardID string) (*models.Progress, error) {
	var (
		p              models.Progress
		status         string
		lastReviewedAt sql.NullTime
		nextReviewAt   sql.NullTime
	)

	err := s.db.QueryRow(`
		SELECT flashcard_id, status, times_reviewed, times_correct, last_reviewed_at, next_review_at
		FROM progress
		WHERE flashcard_id = ?
	`, flashcardID).Scan(&p.FlashcardID, &status, &p.TimesReviewed, &p.TimesCorrect, &lastReviewedAt, &nextReviewAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Status = models.ProgressStatus(status)
	if lastReviewedAt.Valid {
		p.LastReviewedAt = lastReviewedAt.Time
	}
	if nextReviewAt.Valid {
		p.NextReviewAt = nextReviewAt.Time
	}

	return &p, nil
}

// Upsert writes the review record for a card, replacing any prior state.
func (s *ProgressStore) Upsert(p *models.Progress) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (flashcard_id, status, times_reviewed, times_correct, last_reviewed_at, next_review_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(flashcard_id) DO UPDATE SET
			status = excluded.status,
			times_reviewed = excluded.times_reviewed,
			times_correct = excluded.times_correct,
			last_reviewed_at = excluded.last_reviewed_at,
			next_review_at = excluded.next_review_at
	`, p.FlashcardID, string(p.Status), p.TimesReviewed, p.TimesCorrect, p.LastReviewedAt, p.NextReviewAt)

	return err
}

// Due retrieves records that are due at the given time or flagged
// needs_review, ascending by due date, capped at limit.
func (s *ProgressStore) Due(now time.Time, limit int) ([]models.Progress, error) {
	rows, err := s.db.Query(`
		SELECT flashcard_id, status, times_reviewed, times_correct, last_reviewed_at, next_review_at
		FROM progress
		WHERE next_review_at <= ? OR status = ?
		ORDER BY next_review_at ASC
		LIMIT ?
	`, now, string(models.StatusNeedsReview), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.Progress

	for rows.Next() {
		var (
			p              models.Progress
			status         string
			lastReviewedAt sql.NullTime
			nextReviewAt   sql.NullTime
		)

		if err := rows.Scan(&p.FlashcardID, &status, &p.TimesReviewed, &p.TimesCorrect, &lastReviewedAt, &nextReviewAt); err != nil {
			return nil, err
		}

		p.Status = models.ProgressStatus(status)
		if lastReviewedAt.Valid {
			p.LastReviewedAt = lastReviewedAt.Time
		}
		if nextReviewAt.Valid {
			p.NextReviewAt = nextReviewAt.Time
		}

		records = append(records, p)
	}

	return records, rows.Err()
}

// CountByStatus returns the number of records in the given status.
func (s *ProgressStore) CountByStatus(status models.ProgressStatus) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM progress WHERE status = ?", string(status)).Scan(&count)
	return count, err
}
