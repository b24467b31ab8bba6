package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a Redis round trip that failed for transport reasons.
// Such failures are wrapped with [Retryable].
var ErrNetwork = errors.New("network error")

// Retry tuning for [RetryWithBackoff]. Tests shorten RetryDelay.
var (
	RetryAttempts = 3
	RetryDelay    = 100 * time.Millisecond
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError; nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or RetryAttempts calls have been made. The delay starts at
// RetryDelay and doubles after every failure. A cancelled ctx stops the
// loop between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= RetryAttempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
