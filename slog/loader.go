package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.DatasetLoader = (*LoggingDatasetLoader)(nil)

// LoggingDatasetLoader wraps a DatasetLoader with logging, including
// coordinate coverage of the loaded dataset.
type LoggingDatasetLoader struct {
	next   orgsearch.DatasetLoader
	logger *slog.Logger
}

// NewLoggingDatasetLoader creates a new LoggingDatasetLoader.
func NewLoggingDatasetLoader(next orgsearch.DatasetLoader, logger *slog.Logger) *LoggingDatasetLoader {
	return &LoggingDatasetLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the result.
func (l *LoggingDatasetLoader) Load(ctx context.Context) (ds *orgsearch.Dataset, err error) {
	defer func(begin time.Time) {
		stats := ds.Stats()
		l.logger.Info("load dataset",
			"count", stats.Total,
			"zip", stats.ZipMatched,
			"city", stats.CityMatched,
			"none", stats.Unresolved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx)
}
