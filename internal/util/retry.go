// ABOUTME: Backoff helper for retried embedding and chat API calls
// ABOUTME: Exponential growth with jitter, capped at 30 seconds
package util

import (
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before the given retry attempt. The base delay
// doubles each attempt with up to ±25% jitter. Attempt 0 and a non-positive
// base delay wait nothing.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}

	delay := baseDelay * time.Duration(1<<uint(attempt))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}

	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
