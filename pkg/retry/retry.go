package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// RetryableFunc defines a function that can be retried
type RetryableFunc func() error

// Config holds the configuration for retrying operations
type Config struct {
	// Operation names the retried action in log lines, e.g. "save workbook"
	Operation       string
	MaxAttempts     int
	BackoffStrategy BackoffStrategy
	Logger          logger.Logger
	// RetryableErrors limits retries to errors matching one of these via errors.Is.
	// An empty list retries every error.
	RetryableErrors []error
}

// Do runs fn until it succeeds, the attempts are exhausted, a non-retryable
// error is returned or ctx is done.
func Do(ctx context.Context, fn RetryableFunc, cfg *Config) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s cancelled: %w", cfg.Operation, err)
		}

		err := fn()

		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == attempts {
			break
		}

		if !isRetryable(err, cfg.RetryableErrors) {
			return err
		}

		backoff := cfg.BackoffStrategy.NextBackoff(attempt)

		if cfg.Logger != nil {
			cfg.Logger.Warn("Retrying after error",
				"operation", cfg.Operation,
				"error", err,
				"attempt", attempt,
				"maxAttempts", attempts,
				"backoff", backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s cancelled during backoff: %w", cfg.Operation, ctx.Err())
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", cfg.Operation, attempts, lastErr)
}

func isRetryable(err error, retryableErrors []error) bool {
	if len(retryableErrors) == 0 {
		return true
	}

	for _, retryableErr := range retryableErrors {
		if errors.Is(err, retryableErr) {
			return true
		}
	}

	return false
}
