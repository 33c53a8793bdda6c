// Package load assembles a searchable Dataset from its sources and guards
// queries behind a readiness gate.
package load

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/geocode"
	"golang.org/x/sync/errgroup"
)

// IngestFunc turns a fetched dataset body into organization records.
type IngestFunc func(body string, opts orgsearch.IngestOptions) ([]orgsearch.Organization, error)

// ParseCSV is the default IngestFunc.
func ParseCSV(body string, opts orgsearch.IngestOptions) ([]orgsearch.Organization, error) {
	return orgsearch.ParseOrganizations(body, opts), nil
}

var _ orgsearch.DatasetLoader = (*Loader)(nil)

// Loader fetches the dataset and coordinate tables and resolves coordinates.
type Loader struct {
	Fetcher orgsearch.Fetcher

	DatasetURL   string
	ZipTableURL  string
	CityTableURL string // empty disables the city table

	Options orgsearch.IngestOptions
	Ingest  IngestFunc

	// Mode selects static tables or geocoding. Geocoding needs Batcher.
	Mode    orgsearch.CoordinateMode
	Batcher *geocode.Batcher

	Now func() time.Time
}

// NewLoader returns a Loader configured from cfg.
func NewLoader(cfg *orgsearch.Config, fetcher orgsearch.Fetcher) *Loader {
	return &Loader{
		Fetcher:      fetcher,
		DatasetURL:   cfg.DatasetURL,
		ZipTableURL:  cfg.ZipTableURL,
		CityTableURL: cfg.CityTableURL,
		Options:      orgsearch.IngestOptions{RequireZip: cfg.RequireZip},
		Mode:         cfg.CoordinateMode,
	}
}

// Load fetches all sources concurrently and builds a Dataset.
//
// A dataset or zip table that cannot be fetched or parsed fails the load
// with EUNAVAILABLE. The city table is best effort: any failure leaves
// city resolution disabled.
func (l *Loader) Load(ctx context.Context) (*orgsearch.Dataset, error) {
	var body string
	var zips, cities map[string]orgsearch.Coordinate

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		body, err = l.Fetcher.Fetch(gctx, l.DatasetURL)
		if err != nil {
			return orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Unable to load organization data: %v", err)
		}
		return nil
	})

	if l.Mode != orgsearch.ModeGeocoding {
		g.Go(func() error {
			data, err := l.Fetcher.Fetch(gctx, l.ZipTableURL)
			if err != nil {
				return orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Error loading coordinates: %v", err)
			}
			zips, err = orgsearch.ParseZipTable([]byte(data))
			if err != nil {
				return orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Error loading coordinates: %v", err)
			}
			return nil
		})
	}

	if l.CityTableURL != "" {
		g.Go(func() error {
			data, err := l.Fetcher.Fetch(gctx, l.CityTableURL)
			if err != nil {
				return nil
			}
			if parsed, err := orgsearch.ParseCityTable([]byte(data)); err == nil {
				cities = parsed
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ingest := l.Ingest
	if ingest == nil {
		ingest = ParseCSV
	}
	orgs, err := ingest(body, l.Options)
	if err != nil {
		return nil, orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Unable to load organization data: %v", err)
	}

	if l.Mode == orgsearch.ModeGeocoding {
		zips, err = l.geocodeZips(ctx, orgs)
		if err != nil {
			return nil, err
		}
	}

	table := &orgsearch.CoordinateTable{Zips: zips, Cities: cities}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	return &orgsearch.Dataset{
		Organizations: orgsearch.Resolve(orgs, table),
		Table:         table,
		Checksum:      Checksum(body),
		LoadedAt:      now(),
	}, nil
}

// geocodeZips builds a zip table for the dataset's zips. Individual lookups
// may fail; cache and context failures fail the load.
func (l *Loader) geocodeZips(ctx context.Context, orgs []orgsearch.Organization) (map[string]orgsearch.Coordinate, error) {
	if l.Batcher == nil {
		return nil, orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Error loading coordinates: no geocoder configured")
	}

	result, err := l.Batcher.GeocodeZips(ctx, UniqueZips(orgs), nil)
	if err != nil {
		return nil, orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Error loading coordinates: %v", err)
	}
	return result.Coordinates, nil
}

// UniqueZips returns the distinct non-empty zips of orgs in first-seen order.
func UniqueZips(orgs []orgsearch.Organization) []string {
	seen := make(map[string]struct{})
	var zips []string
	for _, org := range orgs {
		if org.Zip == "" {
			continue
		}
		if _, ok := seen[org.Zip]; ok {
			continue
		}
		seen[org.Zip] = struct{}{}
		zips = append(zips, org.Zip)
	}
	return zips
}

// UniqueCityKeys returns the distinct "City, ST" keys of orgs with a known
// city and state, in first-seen order.
func UniqueCityKeys(orgs []orgsearch.Organization) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, org := range orgs {
		if org.City == orgsearch.Unknown || org.State == orgsearch.Unknown {
			continue
		}
		if strings.TrimSpace(org.City) == "" || strings.TrimSpace(org.State) == "" {
			continue
		}
		key := org.CityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// Checksum returns the hex xxHash of a dataset body.
func Checksum(body string) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(body)))
}

// SourceFetcher routes http and https sources to Remote and everything else
// to Local.
type SourceFetcher struct {
	Remote orgsearch.Fetcher
	Local  orgsearch.Fetcher
}

var _ orgsearch.Fetcher = (*SourceFetcher)(nil)

// Fetch implements orgsearch.Fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if f.Remote == nil {
			return "", fmt.Errorf("no remote fetcher for %s", source)
		}
		return f.Remote.Fetch(ctx, source)
	}
	if f.Local == nil {
		return "", fmt.Errorf("no local fetcher for %s", source)
	}
	return f.Local.Fetch(ctx, source)
}
