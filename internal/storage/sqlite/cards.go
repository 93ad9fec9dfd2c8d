// ABOUTME: Flashcard persistence and card/progress joins for study queues
// ABOUTME: Backs the review priority sorter and exam sampler
package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// CardStore handles flashcard persistence.
type CardStore struct {
	db *DB
}

// NewCardStore creates a new CardStore.
func NewCardStore(db *DB) *CardStore {
	return &CardStore{db: db}
}

// Save inserts a flashcard, generating an ID when absent.
func (s *CardStore) Save(card *models.Flashcard) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO flashcards (id, subject_id, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, card.ID, card.SubjectID, card.Question, card.Answer, card.CreatedAt)

	return err
}

// Get retrieves a flashcard by ID, or nil when it does not exist.
func (s *CardStore) Get(id string) (*models.Flashcard, error) {
	var (
		card      models.Flashcard
		subjectID sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, subject_id, question, answer, created_at
		FROM flashcards
		WHERE id = ?
	`, id).Scan(&card.ID, &subjectID, &card.Question, &card.Answer, &card.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if subjectID.Valid {
		card.SubjectID = subjectID.String
	}

	return &card, nil
}

// Delete removes a flashcard; its progress row cascades.
func (s *CardStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM flashcards WHERE id = ?", id)
	return err
}

// Count returns the total number of flashcards.
func (s *CardStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM flashcards").Scan(&count)
	return count, err
}

// ListWithProgress retrieves all cards joined with their optional progress,
// optionally filtered to one subject. Cards never studied come back with a
// nil Progress.
func (s *CardStore) ListWithProgress(subjectID string) ([]models.CardWithProgress, error) {
	query := `
		SELECT f.id, f.subject_id, f.question, f.answer, f.created_at,
		       p.status, p.times_reviewed, p.times_correct, p.last_reviewed_at, p.next_review_at
		FROM flashcards f
		LEFT JOIN progress p ON p.flashcard_id = f.id
	`
	args := []interface{}{}
	if subjectID != "" {
		query += " WHERE f.subject_id = ?"
		args = append(args, subjectID)
	}
	query += " ORDER BY f.created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cards []models.CardWithProgress

	for rows.Next() {
		var (
			card           models.Flashcard
			subject        sql.NullString
			status         sql.NullString
			timesReviewed  sql.NullInt64
			timesCorrect   sql.NullInt64
			lastReviewedAt sql.NullTime
			nextReviewAt   sql.NullTime
		)

		if err := rows.Scan(&card.ID, &subject, &card.Question, &card.Answer, &card.CreatedAt,
			&status, &timesReviewed, &timesCorrect, &lastReviewedAt, &nextReviewAt); err != nil {
			return nil, err
		}

		if subject.Valid {
			card.SubjectID = subject.String
		}

		entry := models.CardWithProgress{Card: card}
		if status.Valid {
			entry.Progress = &models.Progress{
				FlashcardID:    card.ID,
				Status:         models.ProgressStatus(status.String),
				TimesReviewed:  int(timesReviewed.Int64),
				TimesCorrect:   int(timesCorrect.Int64),
				LastReviewedAt: lastReviewedAt.Time,
				NextReviewAt:   nextReviewAt.Time,
			}
		}

		cards = append(cards, entry)
	}

	return cards, rows.Err()
}
