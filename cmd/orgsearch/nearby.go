package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/orgsearch"
)

// Run executes the nearby command.
func (c *NearbyCmd) Run(deps *Dependencies) error {
	if err := deps.Directory.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	center, err := c.center(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	q := orgsearch.NewProximityQuery(center, c.Radius, c.Type)
	q.Zip = c.Zip

	results, err := deps.Directory.Query(q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	for c.Expand && len(results) == 0 && q.RadiusMiles < orgsearch.MaxRadiusMiles {
		q.RadiusMiles = orgsearch.ExpandRadius(q.RadiusMiles)
		fmt.Fprintf(deps.Stderr, "No results, expanding search to %s miles\n", strconv.FormatFloat(q.RadiusMiles, 'f', -1, 64))
		results, err = deps.Directory.Query(q)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
			return err
		}
	}

	if err := writeResults(deps, c.OutputFlags, q, results); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	return nil
}

// center resolves the search center from exactly one of --zip, --here or --at.
func (c *NearbyCmd) center(deps *Dependencies) (orgsearch.Coordinate, error) {
	switch {
	case c.Here:
		pos, err := deps.Locator.Locate(deps.Ctx)
		if err != nil {
			return orgsearch.Coordinate{}, err
		}
		return pos.Coordinate, nil
	case c.At != "":
		return parseCoordinate(c.At)
	case c.Zip != "":
		if !orgsearch.ValidZip(c.Zip) {
			return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.EINVALID, "Please enter a valid zip code (e.g., 12345)")
		}
		return deps.Directory.LookupZip(c.Zip)
	}
	return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.EINVALID, "search center required: use --zip, --here or --at")
}

// parseCoordinate parses "LAT,LON".
func parseCoordinate(s string) (orgsearch.Coordinate, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.EINVALID, "invalid coordinate %q, expected LAT,LON", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.EINVALID, "invalid latitude %q", lat)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return orgsearch.Coordinate{}, orgsearch.Errorf(orgsearch.EINVALID, "invalid longitude %q", lon)
	}
	c := orgsearch.Coordinate{Latitude: la, Longitude: lo}
	if err := c.Validate(); err != nil {
		return orgsearch.Coordinate{}, err
	}
	return c, nil
}
