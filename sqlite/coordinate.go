package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/orgsearch"
)

// Compile-time interface verification.
var _ orgsearch.CoordinateCache = (*CoordinateCache)(nil)

// CoordinateCache implements orgsearch.CoordinateCache using SQLite.
type CoordinateCache struct {
	db *DB
}

// NewCoordinateCache creates a new CoordinateCache.
func NewCoordinateCache(db *DB) *CoordinateCache {
	return &CoordinateCache{db: db}
}

// FindCoordinate retrieves a cached coordinate by kind and key.
func (s *CoordinateCache) FindCoordinate(ctx context.Context, kind orgsearch.CoordinateSource, key string) (*orgsearch.CachedCoordinate, error) {
	c := orgsearch.CachedCoordinate{Kind: kind, Key: key}
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT latitude, longitude, provider, fetched_at
		FROM coordinates
		WHERE kind = ? AND key = ?
	`, string(kind), key).Scan(&c.Coordinate.Latitude, &c.Coordinate.Longitude, &c.Provider, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, orgsearch.Errorf(orgsearch.ENOTFOUND, "no cached coordinate for %s %q", kind, key)
	}
	if err != nil {
		return nil, err
	}

	c.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCoordinates retrieves cached coordinates matching the filter.
func (s *CoordinateCache) FindCoordinates(ctx context.Context, filter orgsearch.CoordinateFilter) ([]*orgsearch.CachedCoordinate, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT kind, key, latitude, longitude, provider, fetched_at FROM coordinates WHERE 1=1")

	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.Keys != nil {
		if len(filter.Keys) == 0 {
			return []*orgsearch.CachedCoordinate{}, nil
		}
		query.WriteString(" AND key IN (?" + strings.Repeat(", ?", len(filter.Keys)-1) + ")")
		for _, k := range filter.Keys {
			args = append(args, k)
		}
	}

	query.WriteString(" ORDER BY kind, key")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coords := []*orgsearch.CachedCoordinate{}
	for rows.Next() {
		var c orgsearch.CachedCoordinate
		var kind, fetchedAt string

		if err := rows.Scan(&kind, &c.Key, &c.Coordinate.Latitude, &c.Coordinate.Longitude, &c.Provider, &fetchedAt); err != nil {
			return nil, err
		}
		c.Kind = orgsearch.CoordinateSource(kind)

		c.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		coords = append(coords, &c)
	}

	return coords, rows.Err()
}

// SaveCoordinate inserts or replaces a cached coordinate.
// A zero FetchedAt is set to the current time.
func (s *CoordinateCache) SaveCoordinate(ctx context.Context, c *orgsearch.CachedCoordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.FetchedAt.IsZero() {
		c.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coordinates (kind, key, latitude, longitude, provider, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, key) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			provider = excluded.provider,
			fetched_at = excluded.fetched_at
	`, string(c.Kind), c.Key, c.Coordinate.Latitude, c.Coordinate.Longitude, c.Provider,
		c.FetchedAt.UTC().Format(time.RFC3339))

	return err
}

// DeleteCoordinates removes every cached coordinate of kind.
func (s *CoordinateCache) DeleteCoordinates(ctx context.Context, kind orgsearch.CoordinateSource) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM coordinates WHERE kind = ?", string(kind))
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
