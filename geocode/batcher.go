// Package geocode resolves zip codes and cities to coordinates in rate
// limited batches, reusing and filling a coordinate cache.
package geocode

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/orgsearch"
	"golang.org/x/sync/errgroup"
)

// Batcher geocodes keys in fixed-size batches with a pause between batches.
type Batcher struct {
	Geocoder orgsearch.Geocoder

	// Cache is consulted before geocoding and, when SaveToCache is set,
	// receives every successful lookup. Optional.
	Cache       orgsearch.CoordinateCache
	SaveToCache bool

	// RateLimiter throttles requests per provider. Optional.
	RateLimiter orgsearch.RateLimiter

	BatchSize   int
	BatchDelay  time.Duration
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Result holds the outcome of a batch geocoding pass.
type Result struct {
	Coordinates map[string]orgsearch.Coordinate
	Failed      []string
	Requested   int
	Cached      int
	Fetched     int
}

// ProgressEvent reports progress during a geocoding pass.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Key       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting geocoding progress.
type ProgressFunc func(event ProgressEvent)

// GeocodeZips resolves zip codes. Keys that are not plain 5-digit codes are
// reported as failed without a provider request.
func (b *Batcher) GeocodeZips(ctx context.Context, zips []string, progress ProgressFunc) (*Result, error) {
	var keys, invalid []string
	for _, z := range dedupe(zips) {
		if orgsearch.GeocodableZip(z) {
			keys = append(keys, z)
		} else {
			invalid = append(invalid, z)
		}
	}

	result, err := b.run(ctx, orgsearch.SourceZip, keys, b.Geocoder.GeocodeZip, progress)
	if err != nil {
		return nil, err
	}
	result.Requested += len(invalid)
	result.Failed = append(result.Failed, invalid...)
	return result, nil
}

// GeocodeCities resolves "City, ST" keys.
func (b *Batcher) GeocodeCities(ctx context.Context, cityKeys []string, progress ProgressFunc) (*Result, error) {
	lookup := func(ctx context.Context, key string) (orgsearch.Coordinate, error) {
		city, state, ok := splitCityKey(key)
		if !ok {
			return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.ENOTFOUND, "malformed city key %q", key)
		}
		return b.Geocoder.GeocodeCity(ctx, city, state)
	}
	return b.run(ctx, orgsearch.SourceCity, dedupe(cityKeys), lookup, progress)
}

type lookupResult struct {
	key   string
	coord orgsearch.Coordinate
	err   error
}

func (b *Batcher) run(ctx context.Context, kind orgsearch.CoordinateSource, keys []string, lookup LookupFunc, progress ProgressFunc) (*Result, error) {
	result := &Result{
		Coordinates: make(map[string]orgsearch.Coordinate, len(keys)),
		Requested:   len(keys),
	}

	pending, err := b.fromCache(ctx, kind, keys, result)
	if err != nil {
		return nil, err
	}

	total := len(pending)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	size := b.BatchSize
	if size <= 0 {
		size = orgsearch.DefaultGeocodeBatchSize
	}

	var mu sync.Mutex
	var completed int
	var fetched []lookupResult

	for start := 0; start < len(pending); start += size {
		if start > 0 && b.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.BatchDelay):
			}
		}

		batch := pending[start:min(start+size, len(pending))]

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(size)
		for _, key := range batch {
			g.Go(func() error {
				c, err := b.lookupOne(gctx, key, lookup)
				if err != nil && ctx.Err() != nil {
					return ctx.Err()
				}

				mu.Lock()
				defer mu.Unlock()
				completed++
				fetched = append(fetched, lookupResult{key: key, coord: c, err: err})
				if progress != nil {
					ev := ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Key: key}
					if err != nil {
						ev.Type = ProgressFailed
						ev.Error = err
					}
					progress(ev)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	failed := make(map[string]bool)
	for _, r := range fetched {
		if r.err != nil {
			failed[r.key] = true
			continue
		}
		result.Coordinates[r.key] = r.coord
		result.Fetched++

		if b.Cache != nil && b.SaveToCache {
			if err := b.Cache.SaveCoordinate(ctx, &orgsearch.CachedCoordinate{
				Kind:       kind,
				Key:        r.key,
				Coordinate: r.coord,
				Provider:   b.Geocoder.Name(),
			}); err != nil {
				return nil, fmt.Errorf("cache %s %q: %w", kind, r.key, err)
			}
		}
	}
	// Failed keys keep input order.
	for _, key := range pending {
		if failed[key] {
			result.Failed = append(result.Failed, key)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// fromCache fills result with cached coordinates and returns the keys still
// to be geocoded, in input order.
func (b *Batcher) fromCache(ctx context.Context, kind orgsearch.CoordinateSource, keys []string, result *Result) ([]string, error) {
	if b.Cache == nil || len(keys) == 0 {
		return keys, nil
	}

	cached, err := b.Cache.FindCoordinates(ctx, orgsearch.CoordinateFilter{Kind: &kind, Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("read coordinate cache: %w", err)
	}
	for _, c := range cached {
		result.Coordinates[c.Key] = c.Coordinate
	}
	result.Cached = len(result.Coordinates)

	var pending []string
	for _, key := range keys {
		if _, ok := result.Coordinates[key]; !ok {
			pending = append(pending, key)
		}
	}
	return pending, nil
}

func (b *Batcher) lookupOne(ctx context.Context, key string, lookup LookupFunc) (orgsearch.Coordinate, error) {
	if b.RateLimiter != nil {
		limited := lookup
		lookup = func(ctx context.Context, key string) (orgsearch.Coordinate, error) {
			if err := b.RateLimiter.Wait(ctx, b.Geocoder.Name()); err != nil {
				return orgsearch.Coordinate{}, err
			}
			return limited(ctx, key)
		}
	}

	c, err := LookupWithRetry(ctx, key, lookup, b.Logger, b.RetryDelays)
	if err != nil {
		return orgsearch.Coordinate{}, err
	}
	if err := c.Validate(); err != nil {
		return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.ENOTFOUND, "provider returned invalid coordinate for %q: %s", key, orgsearch.ErrorMessage(err))
	}
	return c, nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func splitCityKey(key string) (city, state string, ok bool) {
	i := strings.LastIndex(key, ", ")
	if i <= 0 || i+2 >= len(key) {
		return "", "", false
	}
	return key[:i], key[i+2:], true
}
