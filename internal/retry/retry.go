// Package retry wraps external service calls in a bounded-timeout,
// bounded-attempt policy with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a category of external calls. The zero value runs the
// operation once with no per-attempt timeout.
type Policy struct {
	// Timeout applies per attempt; zero disables it.
	Timeout time.Duration
	// Attempts is the total number of tries; values below 1 mean one.
	Attempts int
}

// Do runs op under the policy. The operation receives a context that
// expires after Timeout; attempt backoff starts at 500ms and doubles up
// to 5s. Wrap an error with Permanent to stop retrying early.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	policy := backoff.WithMaxRetries(backoff.WithContext(bo, ctx), uint64(attempts-1))

	return backoff.Retry(func() error {
		attemptCtx := ctx
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
			defer cancel()
		}
		return op(attemptCtx)
	}, policy)
}

// Permanent marks err as non-retryable; Do returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
