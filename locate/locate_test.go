package locate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/locate"
	"github.com/fwojciec/orgsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reasonOf(t *testing.T, err error) orgsearch.LocationReason {
	t.Helper()
	var le *orgsearch.LocationError
	require.True(t, errors.As(err, &le), "expected LocationError, got %v", err)
	return le.Reason
}

func TestCached_Locate(t *testing.T) {
	t.Parallel()

	here := orgsearch.Coordinate{Latitude: 39.95, Longitude: -75.16}

	t.Run("reuses a recent position", func(t *testing.T) {
		t.Parallel()

		calls := 0
		clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		c := locate.NewCached(&mock.Locator{
			LocateFn: func(context.Context) (orgsearch.Position, error) {
				calls++
				return orgsearch.Position{Coordinate: here}, nil
			},
		})
		c.Now = func() time.Time { return clock }

		_, err := c.Locate(context.Background())
		require.NoError(t, err)

		clock = clock.Add(4 * time.Minute)
		pos, err := c.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, here, pos.Coordinate)
		assert.Equal(t, 1, calls)

		clock = clock.Add(2 * time.Minute)
		_, err = c.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "position older than max age is refreshed")
	})

	t.Run("times out slow locators", func(t *testing.T) {
		t.Parallel()

		c := locate.NewCached(&mock.Locator{
			LocateFn: func(context.Context) (orgsearch.Position, error) {
				time.Sleep(200 * time.Millisecond)
				return orgsearch.Position{Coordinate: here}, nil
			},
		})
		c.Timeout = 10 * time.Millisecond

		_, err := c.Locate(context.Background())

		assert.Equal(t, orgsearch.LocationTimeout, reasonOf(t, err))
		assert.Equal(t, orgsearch.ELOCATION, orgsearch.ErrorCode(err))
	})

	t.Run("keeps location error reasons", func(t *testing.T) {
		t.Parallel()

		c := locate.NewCached(locate.Disabled{})

		_, err := c.Locate(context.Background())

		assert.Equal(t, orgsearch.LocationPermissionDenied, reasonOf(t, err))
	})

	t.Run("other errors are position unavailable", func(t *testing.T) {
		t.Parallel()

		c := locate.NewCached(&mock.Locator{
			LocateFn: func(context.Context) (orgsearch.Position, error) {
				return orgsearch.Position{}, errors.New("network down")
			},
		})

		_, err := c.Locate(context.Background())

		assert.Equal(t, orgsearch.LocationPositionUnavailable, reasonOf(t, err))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		t.Parallel()

		calls := 0
		c := locate.NewCached(&mock.Locator{
			LocateFn: func(context.Context) (orgsearch.Position, error) {
				calls++
				if calls == 1 {
					return orgsearch.Position{}, errors.New("flaky")
				}
				return orgsearch.Position{Coordinate: here}, nil
			},
		})

		_, err := c.Locate(context.Background())
		require.Error(t, err)

		pos, err := c.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, here, pos.Coordinate)
	})
}

func TestFixed_Locate(t *testing.T) {
	t.Parallel()

	f := &locate.Fixed{Coordinate: orgsearch.Coordinate{Latitude: 1, Longitude: 2}}

	pos, err := f.Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, orgsearch.Coordinate{Latitude: 1, Longitude: 2}, pos.Coordinate)
}

func TestDisabled_Locate(t *testing.T) {
	t.Parallel()

	_, err := locate.Disabled{}.Locate(context.Background())

	assert.Equal(t, orgsearch.LocationPermissionDenied, reasonOf(t, err))
	assert.Contains(t, orgsearch.ErrorMessage(err), "Location access was denied")
}
