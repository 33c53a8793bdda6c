//go:build integration

package nominatim_test

import (
	"context"
	"testing"

	"github.com/fwojciec/orgsearch/nominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GeocodeZip_Integration(t *testing.T) {
	client := nominatim.NewClient()

	c, err := client.GeocodeZip(context.Background(), "10001")

	require.NoError(t, err)
	t.Logf("10001 -> %f, %f", c.Latitude, c.Longitude)
	assert.InDelta(t, 40.75, c.Latitude, 0.5)
	assert.InDelta(t, -73.99, c.Longitude, 0.5)
}
