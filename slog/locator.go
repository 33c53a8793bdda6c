package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with logging. Coordinates are not logged.
type LoggingLocator struct {
	next   orgsearch.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next orgsearch.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the outcome.
func (l *LoggingLocator) Locate(ctx context.Context) (pos orgsearch.Position, err error) {
	defer func(begin time.Time) {
		l.logger.Info("locate",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx)
}
