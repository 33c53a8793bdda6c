package mock

import (
	"context"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of orgsearch.Geocoder.
type Geocoder struct {
	NameFn        func() string
	GeocodeZipFn  func(ctx context.Context, zip string) (orgsearch.Coordinate, error)
	GeocodeCityFn func(ctx context.Context, city, state string) (orgsearch.Coordinate, error)
}

func (g *Geocoder) Name() string {
	if g.NameFn == nil {
		return "mock"
	}
	return g.NameFn()
}

func (g *Geocoder) GeocodeZip(ctx context.Context, zip string) (orgsearch.Coordinate, error) {
	return g.GeocodeZipFn(ctx, zip)
}

func (g *Geocoder) GeocodeCity(ctx context.Context, city, state string) (orgsearch.Coordinate, error) {
	return g.GeocodeCityFn(ctx, city, state)
}

var _ orgsearch.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of orgsearch.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, key string) error
}

func (r *RateLimiter) Wait(ctx context.Context, key string) error {
	return r.WaitFn(ctx, key)
}
