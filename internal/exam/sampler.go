// ABOUTME: Uniform exam question sampling via seeded Fisher-Yates shuffle
// ABOUTME: Explicit seeding keeps exam sessions reproducible in tests
package exam

import (
	"math/rand/v2"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// Sampler draws uniform random question samples from a card pool.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded for reproducibility.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample returns up to n cards drawn uniformly without replacement. The
// input slice is not mutated.
func (s *Sampler) Sample(cards []models.Flashcard, n int) []models.Flashcard {
	if n <= 0 || len(cards) == 0 {
		return nil
	}

	shuffled := make([]models.Flashcard, len(cards))
	copy(shuffled, cards)

	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
