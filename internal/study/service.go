// ABOUTME: Study flow orchestration: record reviews, build queues, score readiness
// ABOUTME: Scheduling decisions come from the scheduler; persistence from storage
package study

import (
	"fmt"
	"time"

	"github.com/Trppypata/master-plumbing-study/internal/models"
	"github.com/Trppypata/master-plumbing-study/internal/scheduler"
	"github.com/Trppypata/master-plumbing-study/internal/storage/sqlite"
)

// DefaultDueLimit caps the due-card query.
const DefaultDueLimit = 20

// Service coordinates review recording and study queue assembly.
type Service struct {
	storage  *sqlite.Storage
	dueLimit int
	now      func() time.Time
}

// NewService creates a study service. A non-positive dueLimit uses the default.
func NewService(storage *sqlite.Storage, dueLimit int) *Service {
	if dueLimit <= 0 {
		dueLimit = DefaultDueLimit
	}
	return &Service{
		storage:  storage,
		dueLimit: dueLimit,
		now:      time.Now,
	}
}

// RecordStudyResult applies one review event: schedules the card from its
// prior record, upserts the updated record, and logs the attempt in study
// history and daily stats. Returns the updated record.
func (s *Service) RecordStudyResult(result models.StudyResult) (*models.Progress, error) {
	prior, err := s.storage.Progress().Get(result.FlashcardID)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	now := s.now()
	outcome := scheduler.Schedule(prior, result.WasCorrect, now)

	updated := &models.Progress{
		FlashcardID:    result.FlashcardID,
		Status:         outcome.Status,
		TimesReviewed:  1,
		LastReviewedAt: now,
		NextReviewAt:   outcome.NextReviewAt,
	}
	if result.WasCorrect {
		updated.TimesCorrect = 1
	}
	if prior != nil {
		updated.TimesReviewed = prior.TimesReviewed + 1
		updated.TimesCorrect = prior.TimesCorrect
		if result.WasCorrect {
			updated.TimesCorrect++
		}
	}

	if err := s.storage.Progress().Upsert(updated); err != nil {
		return nil, fmt.Errorf("saving progress: %w", err)
	}

	if err := s.storage.Stats().RecordAttempt(result, now); err != nil {
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	return updated, nil
}

// StudyQueue returns all cards (optionally for one subject) ordered for
// study: needs_review first, then new, learning, mastered, earliest due
// first within each tier.
func (s *Service) StudyQueue(subjectID string) ([]models.CardWithProgress, error) {
	cards, err := s.storage.Cards().ListWithProgress(subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return scheduler.SortByPriority(cards), nil
}

// DueCards returns review records due now or flagged needs_review,
// ascending by due date.
func (s *Service) DueCards() ([]models.Progress, error) {
	return s.storage.Progress().Due(s.now(), s.dueLimit)
}

// Readiness scores exam preparedness from the current progress summary.
func (s *Service) Readiness() (int, models.ProgressSummary, error) {
	summary, err := s.storage.Summary()
	if err != nil {
		return 0, models.ProgressSummary{}, err
	}
	return scheduler.ExamReadiness(summary.Total, summary.Mastered, summary.Learning), summary, nil
}

// Streak returns the consecutive-day study streak ending today.
func (s *Service) Streak() (int, error) {
	return s.storage.Stats().Streak(s.now())
}

// Today returns today's study counters.
func (s *Service) Today() (models.DailyStat, error) {
	return s.storage.Stats().Today(s.now())
}

// Calendar returns the 49-day activity calendar, oldest day first.
func (s *Service) Calendar() ([]models.CalendarDay, error) {
	return s.storage.Stats().Calendar(s.now())
}
