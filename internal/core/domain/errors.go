package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password. The two are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited is returned when the login limiter rejects an attempt
	// before storage is consulted.
	ErrRateLimited = errors.New("too many attempts")

	// ErrUnauthenticated means no valid session could be resolved.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInsufficientRole means the session's role ranks below the gate.
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrDataAccessDenied is the generic replacement for any error raised
	// inside a guarded fetch. The original cause is logged server-side only.
	ErrDataAccessDenied = errors.New("data access denied")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrWeakPassword = errors.New("password does not meet minimum requirements")
)

// RateLimitError is the denial the limiter produces when the window still has
// time to run. It unwraps to ErrRateLimited so errors.Is keeps working; the
// HTTP layer reads RetryAfter to set the Retry-After header.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return ErrRateLimited.Error() }

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
