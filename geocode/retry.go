package geocode

import (
	"context"
	"time"

	"github.com/fwojciec/orgsearch"
)

// LookupFunc geocodes a single key.
type LookupFunc func(ctx context.Context, key string) (orgsearch.Coordinate, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for lookup retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LookupWithRetry calls lookup until it succeeds or the delays are exhausted.
// ENOTFOUND is a definitive answer from the provider and is not retried.
// The logger, if provided, is called for each retry attempt.
func LookupWithRetry(ctx context.Context, key string, lookup LookupFunc, logger LogFunc, delays []time.Duration) (orgsearch.Coordinate, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, err := lookup(ctx, key)
		if err == nil {
			return c, nil
		}
		lastErr = err

		if orgsearch.ErrorCode(err) == orgsearch.ENOTFOUND {
			return orgsearch.Coordinate{}, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", key, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return orgsearch.Coordinate{}, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return orgsearch.Coordinate{}, lastErr
}
