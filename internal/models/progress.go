// ABOUTME: Progress tracks per-flashcard spaced repetition state
// ABOUTME: Status always reflects the scheduler's last output for the card
package models

import "time"

// ProgressStatus is the scheduling state of a flashcard.
type ProgressStatus string

const (
	StatusNew         ProgressStatus = "new"
	StatusLearning    ProgressStatus = "learning"
	StatusNeedsReview ProgressStatus = "needs_review"
	StatusMastered    ProgressStatus = "mastered"
)

// Progress is the per-card review record, upserted on every study event and
// keyed by flashcard ID. TimesCorrect never exceeds TimesReviewed.
type Progress struct {
	FlashcardID    string         `json:"flashcard_id"`
	Status         ProgressStatus `json:"status"`
	TimesReviewed  int            `json:"times_reviewed"`
	TimesCorrect   int            `json:"times_correct"`
	LastReviewedAt time.Time      `json:"last_reviewed_at"`
	NextReviewAt   time.Time      `json:"next_review_at"`
}

// Flashcard is a single question/answer card.
type Flashcard struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id,omitempty"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// CardWithProgress pairs a flashcard with its optional review record.
// Progress is nil for cards that have never been studied.
type CardWithProgress struct {
	Card     Flashcard `json:"card"`
	Progress *Progress `json:"progress,omitempty"`
}

// StudyResult is one review event for a card.
type StudyResult struct {
	FlashcardID    string `json:"flashcard_id"`
	WasCorrect     bool   `json:"was_correct"`
	ResponseTimeMs int    `json:"response_time_ms,omitempty"`
}
