package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/fs"
	"github.com/fwojciec/orgsearch/geocode"
	"github.com/fwojciec/orgsearch/load"
)

// Run executes the geocode command.
func (c *GeocodeCmd) Run(deps *Dependencies) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	kind, out := orgsearch.SourceZip, orgsearch.DefaultZipTableURL
	if c.Cities {
		kind, out = orgsearch.SourceCity, orgsearch.DefaultCityTableURL
	}
	if c.Out != "" {
		out = c.Out
	}

	body, err := deps.Fetcher.Fetch(deps.Ctx, deps.Config.DatasetURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	ingest := deps.Ingest
	if ingest == nil {
		ingest = load.ParseCSV
	}
	orgs, err := ingest(body, orgsearch.IngestOptions{RequireZip: deps.Config.RequireZip})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	if c.Refresh && deps.Cache != nil {
		n, err := deps.Cache.DeleteCoordinates(deps.Ctx, kind)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Cleared %d cached %s coordinates\n", n, kind)
	}

	progress := func(event geocode.ProgressEvent) {
		switch event.Type {
		case geocode.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Geocoding %d keys\n", event.Total)
		case geocode.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", event.Completed, event.Total, event.Key, orgsearch.ErrorMessage(event.Error))
		}
	}

	started := now()
	var result *geocode.Result
	if c.Cities {
		result, err = deps.Batcher.GeocodeCities(deps.Ctx, load.UniqueCityKeys(orgs), progress)
	} else {
		result, err = deps.Batcher.GeocodeZips(deps.Ctx, load.UniqueZips(orgs), progress)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	finished := now()

	provider := deps.Batcher.Geocoder.Name()
	meta := orgsearch.NewTableMetadata(len(result.Coordinates), len(result.Failed), provider, finished)

	var table any
	if c.Cities {
		table = &orgsearch.CityTableFile{Metadata: meta, CityCoordinates: result.Coordinates, FailedCities: result.Failed}
	} else {
		table = &orgsearch.ZipTableFile{Metadata: meta, Coordinates: result.Coordinates, FailedZips: result.Failed}
	}
	if err := fs.NewTableStore(out).WriteTable(table); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", out, err)
		return err
	}

	if deps.Runs != nil {
		run := &orgsearch.GeocodeRun{
			Kind:            kind,
			DatasetChecksum: load.Checksum(body),
			Provider:        provider,
			Requested:       result.Requested,
			Cached:          result.Cached,
			Succeeded:       len(result.Coordinates),
			Failed:          len(result.Failed),
			FailedKeys:      result.Failed,
			StartedAt:       started,
			FinishedAt:      finished,
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Geocoded %d of %d %s keys (%d cached, %d failed, %s success)\n",
		len(result.Coordinates), result.Requested, kind, result.Cached, len(result.Failed), meta.SuccessRate)
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", out)
	return nil
}
