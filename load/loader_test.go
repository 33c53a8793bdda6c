package load_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/geocode"
	"github.com/fwojciec/orgsearch/load"
	"github.com/fwojciec/orgsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "name,type,zip,city,state\n" +
	"Harbor House,Shelter,78701,Austin,TX\n" +
	"City Only,Recovery,,Dallas,TX\n" +
	"Nowhere,Food,,Smalltown,TX\n"

const testZipTable = `{"coordinates": {"78701": {"latitude": 30.27, "longitude": -97.74}}}`

const testCityTable = `{"city_coordinates": {"Dallas, TX": {"latitude": 32.78, "longitude": -96.80}}}`

// sources returns a fetcher serving the given bodies; missing keys fail.
func sources(bodies map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, source string) (string, error) {
			if body, ok := bodies[source]; ok {
				return body, nil
			}
			return "", errors.New("HTTP 404 for " + source)
		},
	}
}

func newLoader(f orgsearch.Fetcher) *load.Loader {
	cfg := orgsearch.NewConfig()
	cfg.DatasetURL = "data.csv"
	cfg.ZipTableURL = "zips.json"
	cfg.CityTableURL = "cities.json"
	return load.NewLoader(cfg, f)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("resolves zip then city coordinates", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":    testCSV,
			"zips.json":   testZipTable,
			"cities.json": testCityTable,
		}))
		loader.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, orgsearch.SourceZip, ds.Organizations[0].CoordinateSource)
		assert.Equal(t, orgsearch.SourceCity, ds.Organizations[1].CoordinateSource)
		assert.Equal(t, orgsearch.SourceNone, ds.Organizations[2].CoordinateSource)
		assert.Equal(t, load.Checksum(testCSV), ds.Checksum)
		assert.Equal(t, 2024, ds.LoadedAt.Year())
	})

	t.Run("missing city table disables city resolution", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":  testCSV,
			"zips.json": testZipTable,
		}))

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, orgsearch.SourceZip, ds.Organizations[0].CoordinateSource)
		assert.Equal(t, orgsearch.SourceNone, ds.Organizations[1].CoordinateSource)
		assert.Nil(t, ds.Table.Cities)
	})

	t.Run("malformed city table is ignored", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":    testCSV,
			"zips.json":   testZipTable,
			"cities.json": "not json",
		}))

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, orgsearch.SourceNone, ds.Organizations[1].CoordinateSource)
	})

	t.Run("zip table failure is unavailable", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":    testCSV,
			"cities.json": testCityTable,
		}))

		_, err := loader.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("zip table without coordinates object is unavailable", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":  testCSV,
			"zips.json": `{"metadata": {}}`,
		}))

		_, err := loader.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("dataset failure is unavailable", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"zips.json": testZipTable,
		}))

		_, err := loader.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("custom ingest errors are unavailable", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":  "binary",
			"zips.json": testZipTable,
		}))
		loader.Ingest = func(string, orgsearch.IngestOptions) ([]orgsearch.Organization, error) {
			return nil, errors.New("not a workbook")
		}

		_, err := loader.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("applies require zip option", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{
			"data.csv":  testCSV,
			"zips.json": testZipTable,
		}))
		loader.Options.RequireZip = true

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("fetches sources concurrently", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		inFlight, peak := 0, 0
		bodies := map[string]string{
			"data.csv":    testCSV,
			"zips.json":   testZipTable,
			"cities.json": testCityTable,
		}
		loader := newLoader(&mock.Fetcher{
			FetchFn: func(_ context.Context, source string) (string, error) {
				mu.Lock()
				inFlight++
				peak = max(peak, inFlight)
				mu.Unlock()

				time.Sleep(30 * time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
				return bodies[source], nil
			},
		})

		_, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Greater(t, peak, 1)
	})
}

func TestLoader_LoadGeocoding(t *testing.T) {
	t.Parallel()

	t.Run("geocodes dataset zips instead of reading a zip table", func(t *testing.T) {
		t.Parallel()

		var requested []string
		var mu sync.Mutex
		loader := newLoader(sources(map[string]string{"data.csv": testCSV}))
		loader.Mode = orgsearch.ModeGeocoding
		loader.CityTableURL = ""
		loader.Batcher = &geocode.Batcher{
			Geocoder: &mock.Geocoder{
				GeocodeZipFn: func(_ context.Context, zip string) (orgsearch.Coordinate, error) {
					mu.Lock()
					requested = append(requested, zip)
					mu.Unlock()
					return orgsearch.Coordinate{Latitude: 30.27, Longitude: -97.74}, nil
				},
			},
		}

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"78701"}, requested)
		assert.Equal(t, orgsearch.SourceZip, ds.Organizations[0].CoordinateSource)
	})

	t.Run("individual failures leave records unresolved", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{"data.csv": testCSV}))
		loader.Mode = orgsearch.ModeGeocoding
		loader.Batcher = &geocode.Batcher{
			Geocoder: &mock.Geocoder{
				GeocodeZipFn: func(_ context.Context, zip string) (orgsearch.Coordinate, error) {
					return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.ENOTFOUND, "no match")
				},
			},
		}

		ds, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, orgsearch.SourceNone, ds.Organizations[0].CoordinateSource)
	})

	t.Run("missing batcher is unavailable", func(t *testing.T) {
		t.Parallel()

		loader := newLoader(sources(map[string]string{"data.csv": testCSV}))
		loader.Mode = orgsearch.ModeGeocoding

		_, err := loader.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})
}

func TestUniqueKeys(t *testing.T) {
	t.Parallel()

	orgs := orgsearch.ParseOrganizations(testCSV+"Again,Shelter,78701,Austin,TX\n", orgsearch.IngestOptions{})

	assert.Equal(t, []string{"78701"}, load.UniqueZips(orgs))
	assert.Equal(t, []string{"Austin, TX", "Dallas, TX", "Smalltown, TX"}, load.UniqueCityKeys(orgs))
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Len(t, load.Checksum("abc"), 16)
	assert.Equal(t, load.Checksum("abc"), load.Checksum("abc"))
	assert.NotEqual(t, load.Checksum("abc"), load.Checksum("abd"))
}

func TestSourceFetcher(t *testing.T) {
	t.Parallel()

	var remote, local []string
	f := &load.SourceFetcher{
		Remote: &mock.Fetcher{FetchFn: func(_ context.Context, s string) (string, error) {
			remote = append(remote, s)
			return "", nil
		}},
		Local: &mock.Fetcher{FetchFn: func(_ context.Context, s string) (string, error) {
			local = append(local, s)
			return "", nil
		}},
	}

	ctx := context.Background()
	_, _ = f.Fetch(ctx, "https://example.com/data.csv")
	_, _ = f.Fetch(ctx, "http://example.com/zips.json")
	_, _ = f.Fetch(ctx, "data/cities.json")

	assert.Equal(t, []string{"https://example.com/data.csv", "http://example.com/zips.json"}, remote)
	assert.Equal(t, []string{"data/cities.json"}, local)
}
