package ports

import (
	"context"
	"time"
)

// LimitResult describes the outcome of a single limiter consultation.
type LimitResult struct {
	Allowed    bool
	Remaining  int           // attempts left in the current window after this one
	RetryAfter time.Duration // time until the window resets; zero when allowed
}

// LoginLimiter is a keyed, time-windowed attempt counter. Check counts the
// attempt it is asked about; Reset clears the key (used after a successful
// login). Backings range from a process-local map to a shared Redis store.
type LoginLimiter interface {
	Check(ctx context.Context, key string) (LimitResult, error)
	Reset(ctx context.Context, key string) error
}
