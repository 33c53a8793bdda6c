package orgsearch

import (
	"context"
	"time"
)

// Geocoder resolves zip codes and cities to coordinates through an
// external provider.
type Geocoder interface {
	// Name identifies the provider. It keys rate limiting and cache entries.
	Name() string

	// GeocodeZip returns the coordinate of a 5-digit US zip code.
	// Returns ENOTFOUND if the provider has no match.
	GeocodeZip(ctx context.Context, zip string) (Coordinate, error)

	// GeocodeCity returns the coordinate of a US city.
	// Returns ENOTFOUND if the provider has no match.
	GeocodeCity(ctx context.Context, city, state string) (Coordinate, error)
}

// RateLimiter throttles requests per key.
type RateLimiter interface {
	// Wait blocks until a request for key is allowed.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, key string) error
}

// CachedCoordinate is a geocoding result stored for reuse.
type CachedCoordinate struct {
	Kind       CoordinateSource
	Key        string
	Coordinate Coordinate
	Provider   string
	FetchedAt  time.Time
}

// Validate returns an error if the entry is missing required fields.
func (c *CachedCoordinate) Validate() error {
	if c.Kind != SourceZip && c.Kind != SourceCity {
		return Errorf(EINVALID, "cache kind must be zip or city")
	}
	if c.Key == "" {
		return Errorf(EINVALID, "cache key required")
	}
	return c.Coordinate.Validate()
}

// CoordinateFilter selects cached coordinates.
type CoordinateFilter struct {
	Kind *CoordinateSource
	Keys []string

	Offset int
	Limit  int
}

// CoordinateCache stores geocoding results.
type CoordinateCache interface {
	// FindCoordinate returns the cached entry for key.
	// Returns ENOTFOUND if no entry exists.
	FindCoordinate(ctx context.Context, kind CoordinateSource, key string) (*CachedCoordinate, error)

	// FindCoordinates returns entries matching the filter, ordered by key.
	FindCoordinates(ctx context.Context, filter CoordinateFilter) ([]*CachedCoordinate, error)

	// SaveCoordinate inserts or replaces an entry.
	SaveCoordinate(ctx context.Context, c *CachedCoordinate) error

	// DeleteCoordinates removes every entry of kind and returns how many
	// were removed.
	DeleteCoordinates(ctx context.Context, kind CoordinateSource) (int, error)
}

// GeocodeRun records one batch geocoding pass.
type GeocodeRun struct {
	ID              string
	Kind            CoordinateSource
	DatasetChecksum string
	Provider        string
	Requested       int
	Cached          int
	Succeeded       int
	Failed          int
	FailedKeys      []string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Validate returns an error if the run is missing required fields.
func (r *GeocodeRun) Validate() error {
	if r.Kind != SourceZip && r.Kind != SourceCity {
		return Errorf(EINVALID, "run kind must be zip or city")
	}
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	return nil
}

// GeocodeRunFilter selects recorded runs.
type GeocodeRunFilter struct {
	Kind *CoordinateSource

	Limit int
}

// GeocodeRunService records geocoding runs.
type GeocodeRunService interface {
	// CreateRun stores a run, assigning its ID.
	CreateRun(ctx context.Context, run *GeocodeRun) error

	// FindRunByID returns a run. Returns ENOTFOUND if it does not exist.
	FindRunByID(ctx context.Context, id string) (*GeocodeRun, error)

	// FindRuns returns runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter GeocodeRunFilter) ([]*GeocodeRun, error)
}
