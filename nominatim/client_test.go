package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/nominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GeocodeZip(t *testing.T) {
	t.Parallel()

	t.Run("parses string coordinates and sends required params", func(t *testing.T) {
		t.Parallel()

		var query map[string]string
		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			query = map[string]string{
				"postalcode": r.URL.Query().Get("postalcode"),
				"country":    r.URL.Query().Get("country"),
				"format":     r.URL.Query().Get("format"),
				"limit":      r.URL.Query().Get("limit"),
			}
			_, _ = w.Write([]byte(`[{"lat":"42.8142","lon":"-73.9396","display_name":"Schenectady"}]`))
		}))
		defer server.Close()

		client := nominatim.NewClient(nominatim.WithBaseURL(server.URL))

		c, err := client.GeocodeZip(context.Background(), "12345")

		require.NoError(t, err)
		assert.Equal(t, orgsearch.Coordinate{Latitude: 42.8142, Longitude: -73.9396}, c)
		assert.Equal(t, map[string]string{"postalcode": "12345", "country": "US", "format": "json", "limit": "1"}, query)
		assert.Equal(t, "OrganizationSearch/1.0", ua)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := nominatim.NewClient(nominatim.WithBaseURL(server.URL)).GeocodeZip(context.Background(), "00000")

		assert.Equal(t, orgsearch.ENOTFOUND, orgsearch.ErrorCode(err))
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := nominatim.NewClient(nominatim.WithBaseURL(server.URL)).GeocodeZip(context.Background(), "12345")

		require.Error(t, err)
		assert.Equal(t, orgsearch.EINTERNAL, orgsearch.ErrorCode(err))
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("malformed latitude is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"-73.9"}]`))
		}))
		defer server.Close()

		_, err := nominatim.NewClient(nominatim.WithBaseURL(server.URL)).GeocodeZip(context.Background(), "12345")

		assert.Error(t, err)
	})
}

func TestClient_GeocodeCity(t *testing.T) {
	t.Parallel()

	var city, state string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city = r.URL.Query().Get("city")
		state = r.URL.Query().Get("state")
		_, _ = w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431"}]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.WithBaseURL(server.URL), nominatim.WithUserAgent("test/1"))

	c, err := client.GeocodeCity(context.Background(), "Austin", "TX")

	require.NoError(t, err)
	assert.Equal(t, 30.2672, c.Latitude)
	assert.Equal(t, "Austin", city)
	assert.Equal(t, "TX", state)
	assert.Equal(t, "nominatim", client.Name())
}
