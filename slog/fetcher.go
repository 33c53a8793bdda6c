// Package slog provides log/slog decorators for orgsearch interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/orgsearch"
)

// Ensure LoggingFetcher implements orgsearch.Fetcher.
var _ orgsearch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   orgsearch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next orgsearch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, source string) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"source", source,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, source)
}
