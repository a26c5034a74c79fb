package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// backoffBase is the delay before the first retry; each further retry
// doubles it.
const backoffBase = 500 * time.Millisecond

// Permanent marks a publish error that retrying cannot fix. Retry stops
// on it immediately instead of exhausting the remaining attempts.
type Permanent struct {
	Err error
}

func (e *Permanent) Error() string { return e.Err.Error() }

func (e *Permanent) Unwrap() error { return e.Err }

// Retry runs op up to 1+retries times with exponential backoff between
// attempts. Context cancellation aborts both between attempts and during
// backoff. Returns nil on the first success, the wrapped error for a
// Permanent failure, and the last error once attempts are exhausted.
func Retry(ctx context.Context, retries int, op func(context.Context) error) error {
	var lastErr error
	// attempts = 1 initial + retries
	attempts := 1 + retries

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context canceled: %w", err)
		}

		if i > 0 {
			backoff := backoffBase << uint(i-1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *Permanent
		if errors.As(lastErr, &perm) {
			return fmt.Errorf("non-retriable error: %w", perm.Err)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
