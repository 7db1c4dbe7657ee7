// Package retry wraps operations that may fail on transient storage
// connectivity. Business-logic failures are never retried.
package retry

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// DefaultAttempts bounds the retry budget: one try plus this many
	// retries.
	DefaultAttempts = 3
	// DefaultDelay is the fixed pause between attempts.
	DefaultDelay = 500 * time.Millisecond
)

// Transient reports whether the error looks like a recoverable
// connectivity failure rather than a business outcome.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT)
}

// Do runs op, retrying transient failures up to attempts times with a
// fixed delay. The last error is returned once the budget is spent or
// the failure is not transient.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, op func() (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 1; ; attempt++ {
		result, err = op()
		if err == nil || !Transient(err) || attempt >= attempts {
			return result, err
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}
}
