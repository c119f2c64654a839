// Package ratelimit provides the process-local login limiter. The shared
// Redis-backed variant lives in internal/infrastructure/db/redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sifrex/auth-api/internal/core/ports"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Memory is a fixed-window attempt counter keyed by identifier. Expired
// windows are replaced lazily on next access; nothing survives a restart.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Memory{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Check counts one attempt for key and reports whether it is allowed.
func (m *Memory) Check(_ context.Context, key string) (ports.LimitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		m.entries[key] = &entry{count: 1, resetAt: now.Add(m.window)}
		return ports.LimitResult{Allowed: true, Remaining: m.limit - 1}, nil
	}
	if e.count >= m.limit {
		return ports.LimitResult{Remaining: 0, RetryAfter: e.resetAt.Sub(now)}, nil
	}
	e.count++
	return ports.LimitResult{Allowed: true, Remaining: m.limit - e.count}, nil
}

// Reset clears the counter for key.
func (m *Memory) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
