package services

import (
	"context"
	"time"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/logger"
)

// retryAttempts bounds retries for transient provider failures.
const retryAttempts = 3

// retryBaseDelay is the first backoff delay; it doubles per attempt.
const retryBaseDelay = 500 * time.Millisecond

// withRetry runs fn, retrying transient failures (rate limits, vector
// store availability) with exponential backoff. Non-transient errors
// and context cancellation return immediately.
func withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	delay := retryBaseDelay

	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !domain.IsTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}

		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v", op, attempt, retryAttempts, delay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}
