package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound means the session, level, course or resume does not exist
	// for the caller.
	ErrNotFound = errors.New("not found")
	// ErrValidation rejects malformed input before any persistence or
	// upstream call.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is surfaced on a lost revision race or a duplicate create.
	ErrConflict = errors.New("conflict")
	// ErrInconsistentState marks persisted session data that violates the
	// level invariants (e.g. a short, fully-answered batch). Never patched
	// silently.
	ErrInconsistentState = errors.New("inconsistent session state")
)

// Upstream error codes for the AI collaborators.
const (
	UpstreamCodeRateLimited    = "rate_limited"
	UpstreamCodeBadCredentials = "bad_credentials"
	UpstreamCodeUnavailable    = "unavailable"
)

// UpstreamError wraps a failure from an external AI call. Recoverable by
// retrying the same derivation step; already-persisted state is untouched.
type UpstreamError struct {
	Provider   string
	Code       string
	RetryAfter time.Duration
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Code)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
