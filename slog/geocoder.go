package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Geocoder = (*LoggingGeocoder)(nil)

// LoggingGeocoder wraps a Geocoder with logging.
type LoggingGeocoder struct {
	next   orgsearch.Geocoder
	logger *slog.Logger
}

// NewLoggingGeocoder creates a new LoggingGeocoder.
func NewLoggingGeocoder(next orgsearch.Geocoder, logger *slog.Logger) *LoggingGeocoder {
	return &LoggingGeocoder{next: next, logger: logger}
}

// Name delegates to the wrapped geocoder.
func (g *LoggingGeocoder) Name() string {
	return g.next.Name()
}

// GeocodeZip delegates to the wrapped geocoder and logs the lookup.
func (g *LoggingGeocoder) GeocodeZip(ctx context.Context, zip string) (c orgsearch.Coordinate, err error) {
	defer func(begin time.Time) {
		g.logger.Debug("geocode zip",
			"provider", g.next.Name(),
			"zip", zip,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GeocodeZip(ctx, zip)
}

// GeocodeCity delegates to the wrapped geocoder and logs the lookup.
func (g *LoggingGeocoder) GeocodeCity(ctx context.Context, city, state string) (c orgsearch.Coordinate, err error) {
	defer func(begin time.Time) {
		g.logger.Debug("geocode city",
			"provider", g.next.Name(),
			"city", orgsearch.CityKey(city, state),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GeocodeCity(ctx, city, state)
}
