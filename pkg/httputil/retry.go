package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// [Client] wraps network failures and 5xx responses with this type.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy controls how often and how patiently [Retry] tries again.
type Policy struct {
	Attempts int           // Total attempts, including the first (min 1)
	Delay    time.Duration // Delay before the second attempt; doubles afterwards
}

// DefaultPolicy is 3 attempts starting with a 1 second delay.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second}

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithPolicy runs [Retry] with the attempts and delay of p.
func RetryWithPolicy(ctx context.Context, p Policy, fn func() error) error {
	return Retry(ctx, p.Attempts, p.Delay, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
