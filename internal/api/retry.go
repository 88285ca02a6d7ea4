package api

import (
	"fmt"
	"os"
	"time"
)

// DefaultRetryDelays is the backoff schedule applied when the tracker
// rate-limits a request. Linear's limiter recovers quickly, so the
// schedule starts short and doubles.
var DefaultRetryDelays = []time.Duration{
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
}

// WithRetry runs fn, retrying on rate-limit errors with the default
// backoff schedule. Any other error, including transport failures,
// returns immediately untried.
func WithRetry(fn func() error, maxRetries int) error {
	return WithRetryDelays(fn, maxRetries, DefaultRetryDelays)
}

// WithRetryDelays is WithRetry with an explicit schedule; the last delay
// repeats when attempts outnumber delays. Tests pass millisecond delays
// to stay fast.
func WithRetryDelays(fn func() error, maxRetries int, delays []time.Duration) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil || !IsRateLimited(err) {
			return err
		}
		if attempt < maxRetries {
			delay := delays[min(attempt, len(delays)-1)]
			fmt.Fprintf(os.Stderr, "Warning: tracker rate limit hit, waiting %v (attempt %d of %d)\n",
				delay, attempt+1, maxRetries)
			time.Sleep(delay)
		}
	}
	return err
}
