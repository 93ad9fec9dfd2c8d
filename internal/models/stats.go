// ABOUTME: Aggregated study statistics models
// ABOUTME: Daily counters, streak calendar, and per-status progress summary
package models

import "time"

// StudyRecord is one row of study history, kept per attempt for stats.
type StudyRecord struct {
	ID             string    `json:"id"`
	FlashcardID    string    `json:"flashcard_id"`
	WasCorrect     bool      `json:"was_correct"`
	ResponseTimeMs int       `json:"response_time_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DailyStat aggregates one calendar day of studying. Date is "YYYY-MM-DD".
type DailyStat struct {
	Date         string `json:"date"`
	CardsStudied int    `json:"cards_studied"`
	CardsCorrect int    `json:"cards_correct"`
}

// CalendarDay is one cell of the activity calendar. Level 0 means no
// activity, 4 means the busiest quartile relative to the window's max.
type CalendarDay struct {
	Date         string `json:"date"`
	CardsStudied int    `json:"cards_studied"`
	Level        int    `json:"level"`
}

// ProgressSummary counts cards by scheduling status. New covers cards with
// no progress record at all.
type ProgressSummary struct {
	Total       int `json:"total"`
	Mastered    int `json:"mastered"`
	Learning    int `json:"learning"`
	NeedsReview int `json:"needs_review"`
	New         int `json:"new"`
}
