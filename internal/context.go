package internal

import (
	"context"
	"time"
)

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}

// Clock returns the current instant; services take one so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
