package mock

import (
	"context"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.CoordinateCache = (*CoordinateCache)(nil)

// CoordinateCache is a mock implementation of orgsearch.CoordinateCache.
type CoordinateCache struct {
	FindCoordinateFn    func(ctx context.Context, kind orgsearch.CoordinateSource, key string) (*orgsearch.CachedCoordinate, error)
	FindCoordinatesFn   func(ctx context.Context, filter orgsearch.CoordinateFilter) ([]*orgsearch.CachedCoordinate, error)
	SaveCoordinateFn    func(ctx context.Context, c *orgsearch.CachedCoordinate) error
	DeleteCoordinatesFn func(ctx context.Context, kind orgsearch.CoordinateSource) (int, error)
}

func (c *CoordinateCache) FindCoordinate(ctx context.Context, kind orgsearch.CoordinateSource, key string) (*orgsearch.CachedCoordinate, error) {
	return c.FindCoordinateFn(ctx, kind, key)
}

func (c *CoordinateCache) FindCoordinates(ctx context.Context, filter orgsearch.CoordinateFilter) ([]*orgsearch.CachedCoordinate, error) {
	return c.FindCoordinatesFn(ctx, filter)
}

func (c *CoordinateCache) SaveCoordinate(ctx context.Context, cc *orgsearch.CachedCoordinate) error {
	return c.SaveCoordinateFn(ctx, cc)
}

func (c *CoordinateCache) DeleteCoordinates(ctx context.Context, kind orgsearch.CoordinateSource) (int, error) {
	return c.DeleteCoordinatesFn(ctx, kind)
}

var _ orgsearch.GeocodeRunService = (*GeocodeRunService)(nil)

// GeocodeRunService is a mock implementation of orgsearch.GeocodeRunService.
type GeocodeRunService struct {
	CreateRunFn   func(ctx context.Context, run *orgsearch.GeocodeRun) error
	FindRunByIDFn func(ctx context.Context, id string) (*orgsearch.GeocodeRun, error)
	FindRunsFn    func(ctx context.Context, filter orgsearch.GeocodeRunFilter) ([]*orgsearch.GeocodeRun, error)
}

func (s *GeocodeRunService) CreateRun(ctx context.Context, run *orgsearch.GeocodeRun) error {
	return s.CreateRunFn(ctx, run)
}

func (s *GeocodeRunService) FindRunByID(ctx context.Context, id string) (*orgsearch.GeocodeRun, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *GeocodeRunService) FindRuns(ctx context.Context, filter orgsearch.GeocodeRunFilter) ([]*orgsearch.GeocodeRun, error) {
	return s.FindRunsFn(ctx, filter)
}
