package orgsearch_test

import (
	"testing"

	"github.com/fwojciec/orgsearch"
	"github.com/stretchr/testify/assert"
)

func TestDistanceMiles(t *testing.T) {
	t.Parallel()

	t.Run("zero for identical points", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, orgsearch.DistanceMiles(40.7128, -74.0060, 40.7128, -74.0060))
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()

		ab := orgsearch.DistanceMiles(40.7128, -74.0060, 34.0522, -118.2437)
		ba := orgsearch.DistanceMiles(34.0522, -118.2437, 40.7128, -74.0060)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("New York to Los Angeles", func(t *testing.T) {
		t.Parallel()

		d := orgsearch.DistanceMiles(40.7128, -74.0060, 34.0522, -118.2437)

		assert.InDelta(t, 2445, d, 5)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		t.Parallel()

		d := orgsearch.DistanceMiles(0, 0, 1, 0)

		assert.InDelta(t, 69.1, d, 0.05)
	})
}

func TestRoundDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, orgsearch.RoundDistance(4.9999))
	assert.Equal(t, 3.2, orgsearch.RoundDistance(3.24))
	assert.Equal(t, 3.3, orgsearch.RoundDistance(3.25))
	assert.Equal(t, 0.0, orgsearch.RoundDistance(0))
}
