// ABOUTME: Study history and daily statistics persistence
// ABOUTME: Backs streak computation and the activity calendar
package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// dateLayout is the calendar-day key format for daily_stats.
const dateLayout = "2006-01-02"

// StatsStore handles study history and daily aggregates.
type StatsStore struct {
	db *DB
}

// NewStatsStore creates a new StatsStore.
func NewStatsStore(db *DB) *StatsStore {
	return &StatsStore{db: db}
}

// RecordAttempt appends one study history row and bumps the day's counters.
func (s *StatsStore) RecordAttempt(result models.StudyResult, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO study_history (id, flashcard_id, was_correct, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), result.FlashcardID, boolToInt(result.WasCorrect), result.ResponseTimeMs, now)
	if err != nil {
		return err
	}

	correct := 0
	if result.WasCorrect {
		correct = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_stats (date, cards_studied, cards_correct)
		VALUES (?, 1, ?)
		ON CONFLICT(date) DO UPDATE SET
			cards_studied = cards_studied + 1,
			cards_correct = cards_correct + excluded.cards_correct
	`, now.Format(dateLayout), correct)

	return err
}

// Today returns the current day's study counters. A day with no recorded
// activity comes back zeroed, not as an error.
func (s *StatsStore) Today(now time.Time) (models.DailyStat, error) {
	day := models.DailyStat{Date: now.Format(dateLayout)}

	err := s.db.QueryRow(`
		SELECT cards_studied, cards_correct FROM daily_stats
		WHERE date = ?
	`, day.Date).Scan(&day.CardsStudied, &day.CardsCorrect)

	if err == sql.ErrNoRows {
		return day, nil
	}
	if err != nil {
		return models.DailyStat{}, err
	}

	return day, nil
}

// HistoryForCard retrieves a card's study history, newest first.
func (s *StatsStore) HistoryForCard(flashcardID string, limit int) ([]models.StudyRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, flashcard_id, was_correct, response_time_ms, created_at
		FROM study_history
		WHERE flashcard_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, flashcardID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []models.StudyRecord

	for rows.Next() {
		var (
			r          models.StudyRecord
			wasCorrect int
		)
		if err := rows.Scan(&r.ID, &r.FlashcardID, &wasCorrect, &r.ResponseTimeMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.WasCorrect = wasCorrect != 0
		records = append(records, r)
	}

	return records, rows.Err()
}

// Streak returns the number of consecutive days studied, counting back from
// today. A day with no recorded activity breaks the streak.
func (s *StatsStore) Streak(now time.Time) (int, error) {
	rows, err := s.db.Query(`
		SELECT date FROM daily_stats
		ORDER BY date DESC
		LIMIT 30
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	streak := 0
	for i, d := range dates {
		expected := now.AddDate(0, 0, -i).Format(dateLayout)
		if d != expected {
			break
		}
		streak++
	}

	return streak, nil
}

// Calendar returns the last 49 days of activity with 0-4 intensity levels,
// quartiled against the busiest day in the window. Oldest day first.
func (s *StatsStore) Calendar(now time.Time) ([]models.CalendarDay, error) {
	start := now.AddDate(0, 0, -48).Format(dateLayout)

	rows, err := s.db.Query(`
		SELECT date, cards_studied FROM daily_stats
		WHERE date >= ?
		ORDER BY date ASC
	`, start)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	maxCards := 1
	for rows.Next() {
		var (
			d string
			n int
		)
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		counts[d] = n
		if n > maxCards {
			maxCards = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	calendar := make([]models.CalendarDay, 0, 49)
	for i := 48; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		studied := counts[date]

		level := 0
		if studied > 0 {
			ratio := float64(studied) / float64(maxCards)
			switch {
			case ratio > 0.75:
				level = 4
			case ratio > 0.5:
				level = 3
			case ratio > 0.25:
				level = 2
			default:
				level = 1
			}
		}

		calendar = append(calendar, models.CalendarDay{Date: date, CardsStudied: studied, Level: level})
	}

	return calendar, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
