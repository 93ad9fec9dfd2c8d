// ABOUTME: Spaced repetition scheduling over per-card review history
// ABOUTME: Simplified SM-2 style intervals keyed off cumulative success rate
package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// Review intervals for each scheduling tier.
const (
	missInterval     = 10 * time.Minute
	relearnInterval  = 24 * time.Hour
	shortInterval    = 3 * 24 * time.Hour
	learningInterval = 7 * 24 * time.Hour
	masteredInterval = 30 * 24 * time.Hour
)

// Success rate and review count thresholds, all inclusive.
const (
	masteredRate    = 0.90
	masteredReviews = 5
	learningRate    = 0.70
	learningReviews = 3
	shortRate       = 0.50
)

// Outcome is the scheduling decision for one review event.
type Outcome struct {
	Status       models.ProgressStatus
	NextReviewAt time.Time
}

// Schedule computes the new status and due date for a card given its prior
// review record and whether the latest attempt was correct. It is a pure
// function of its arguments; prior is nil on the card's first exposure.
func Schedule(prior *models.Progress, wasCorrect bool, now time.Time) Outcome {
	if prior == nil {
		if wasCorrect {
			return Outcome{Status: models.StatusLearning, NextReviewAt: now.Add(relearnInterval)}
		}
		return Outcome{Status: models.StatusNeedsReview, NextReviewAt: now.Add(missInterval)}
	}

	// A single miss resets urgency regardless of history.
	if !wasCorrect {
		return Outcome{Status: models.StatusNeedsReview, NextReviewAt: now.Add(missInterval)}
	}

	timesCorrect := prior.TimesCorrect + 1
	timesReviewed := prior.TimesReviewed + 1
	successRate := float64(timesCorrect) / float64(timesReviewed)

	switch {
	case successRate >= masteredRate && timesReviewed >= masteredReviews:
		return Outcome{Status: models.StatusMastered, NextReviewAt: now.Add(masteredInterval)}
	case successRate >= learningRate && timesReviewed >= learningReviews:
		return Outcome{Status: models.StatusLearning, NextReviewAt: now.Add(learningInterval)}
	case successRate >= shortRate:
		return Outcome{Status: models.StatusLearning, NextReviewAt: now.Add(shortInterval)}
	default:
		return Outcome{Status: models.StatusLearning, NextReviewAt: now.Add(relearnInterval)}
	}
}

// statusPriority ranks statuses for study ordering; lower studies first.
// Cards without a progress record rank alongside "new".
func statusPriority(p *models.Progress) int {
	if p == nil {
		return 1
	}
	switch p.Status {
	case models.StatusNeedsReview:
		return 0
	case models.StatusNew:
		return 1
	case models.StatusLearning:
		return 2
	case models.StatusMastered:
		return 3
	default:
		return 1
	}
}

// SortByPriority orders cards for study: needs_review first, then new, then
// learning, then mastered; within a tier, earliest due date first, with
// missing due dates treated as most overdue. The input is not mutated and
// full ties keep their input order.
func SortByPriority(cards []models.CardWithProgress) []models.CardWithProgress {
	sorted := make([]models.CardWithProgress, len(cards))
	copy(sorted, cards)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := statusPriority(sorted[i].Progress), statusPriority(sorted[j].Progress)
		if pi != pj {
			return pi < pj
		}
		return dueTime(sorted[i].Progress).Before(dueTime(sorted[j].Progress))
	})

	return sorted
}

// dueTime treats a missing due date as the epoch so untracked cards sort as
// most overdue within their tier.
func dueTime(p *models.Progress) time.Time {
	if p == nil || p.NextReviewAt.IsZero() {
		return time.Time{}
	}
	return p.NextReviewAt
}

// ExamReadiness scores exam preparedness as a percentage. Mastered cards
// weigh 100%, learning cards 50%. The result is clamped to 100 to guard
// against inconsistent counts.
func ExamReadiness(total, mastered, learning int) int {
	if total == 0 {
		return 0
	}

	weighted := float64(mastered) + 0.5*float64(learning)
	readiness := int(math.Round(weighted / float64(total) * 100))

	if readiness > 100 {
		return 100
	}
	return readiness
}
