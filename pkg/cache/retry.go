package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// connectAttempts bounds how often a remote backend is dialed.
const connectAttempts = 3

// connectBackoff is the wait before the second attempt; it doubles after
// every further failure.
var connectBackoff = time.Second

// transientError marks a failure worth retrying, such as a refused
// connection during startup.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as retryable by [Retry]. It returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err or an error it wraps was marked with
// [Transient].
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// Retry calls fn until it succeeds, fails with an error not marked
// [Transient], or has been called attempts times.
func Retry(ctx context.Context, attempts int, fn func() error) error {
	wait := connectBackoff
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
	return err
}
