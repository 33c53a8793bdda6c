package orgsearch

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxRadiusMiles caps radius expansion.
const MaxRadiusMiles = 50.0

// SearchType identifies the query mode.
type SearchType string

// SearchType constants.
const (
	SearchZip       SearchType = "zip"
	SearchFilters   SearchType = "filters"
	SearchProximity SearchType = "proximity"
)

// Query describes one search request.
//
// Zip, State and ServiceType are exact filters in zip/filters mode. In
// proximity mode only ServiceType filters; Zip, if set, names the zip code
// Center was resolved from and is used for messaging.
type Query struct {
	Zip         string      `json:"zip,omitempty"`
	State       string      `json:"state,omitempty"`
	ServiceType string      `json:"type,omitempty"`
	Center      *Coordinate `json:"center,omitempty"`
	RadiusMiles float64     `json:"radius,omitempty"`
	SearchType  SearchType  `json:"searchType"`
}

// NewFilterQuery returns an exact-match query. The search type is SearchZip
// when a zip is given and SearchFilters otherwise.
func NewFilterQuery(zip, state, serviceType string) Query {
	q := Query{
		Zip:         strings.TrimSpace(zip),
		State:       state,
		ServiceType: serviceType,
		SearchType:  SearchFilters,
	}
	if q.Zip != "" {
		q.SearchType = SearchZip
	}
	return q
}

// NewProximityQuery returns a proximity query around center.
func NewProximityQuery(center Coordinate, radiusMiles float64, serviceType string) Query {
	return Query{
		Center:      &center,
		RadiusMiles: radiusMiles,
		ServiceType: serviceType,
		SearchType:  SearchProximity,
	}
}

// Validate returns an error if the query cannot be executed.
func (q *Query) Validate() error {
	if q.SearchType == SearchProximity {
		if q.Center == nil {
			return Errorf(EINVALID, "search center required")
		}
		if err := q.Center.Validate(); err != nil {
			return err
		}
		if math.IsNaN(q.RadiusMiles) || q.RadiusMiles <= 0 {
			return Errorf(EINVALID, "Please select a valid search radius")
		}
		return nil
	}

	if q.Zip == "" && q.State == "" && q.ServiceType == "" {
		return Errorf(EINVALID, "Please enter a zip code, select a state, or choose a service type to search")
	}
	if q.Zip != "" && !ValidZip(q.Zip) {
		return Errorf(EINVALID, "Please enter a valid zip code (e.g., 12345)")
	}
	return nil
}

// Result is one query match. Distance is set only for proximity queries and
// is rounded to one decimal place.
type Result struct {
	GeocodedOrganization
	Distance *float64 `json:"distance,omitempty"`
}

// FilterOrganizations applies the exact zip, state and service type filters
// of q. Zip comparison uses digit-only forms. Empty filters match everything.
// Input order is preserved.
func FilterOrganizations(orgs []GeocodedOrganization, q Query) []Result {
	zip := NormalizeZip(q.Zip)

	results := []Result{}
	for _, org := range orgs {
		if q.Zip != "" && NormalizeZip(org.Zip) != zip {
			continue
		}
		if q.State != "" && org.State != q.State {
			continue
		}
		if q.ServiceType != "" && org.ServiceType != q.ServiceType {
			continue
		}
		results = append(results, Result{GeocodedOrganization: org})
	}
	return results
}

// FilterNearby returns organizations within q.RadiusMiles of q.Center, nearest
// first. Organizations without coordinates never match. Ties keep input order.
// Returns EINVALID if the center is missing or the radius is not positive.
func FilterNearby(orgs []GeocodedOrganization, q Query) ([]Result, error) {
	if q.Center == nil {
		return nil, Errorf(EINVALID, "search center required")
	}
	if math.IsNaN(q.RadiusMiles) || q.RadiusMiles <= 0 {
		return nil, Errorf(EINVALID, "Please select a valid search radius")
	}

	type match struct {
		org      GeocodedOrganization
		distance float64
	}

	var matches []match
	for _, org := range orgs {
		if q.ServiceType != "" && org.ServiceType != q.ServiceType {
			continue
		}
		if org.Coordinate == nil {
			continue
		}
		d := Distance(*q.Center, *org.Coordinate)
		if d <= q.RadiusMiles {
			matches = append(matches, match{org: org, distance: d})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return cmp.Compare(a.distance, b.distance)
	})

	results := make([]Result, len(matches))
	for i, m := range matches {
		d := RoundDistance(m.distance)
		results[i] = Result{GeocodedOrganization: m.org, Distance: &d}
	}
	return results, nil
}

// ExpandRadius doubles a search radius, capped at MaxRadiusMiles.
func ExpandRadius(radiusMiles float64) float64 {
	return min(radiusMiles*2, MaxRadiusMiles)
}

// NoResultsMessage describes an empty result set in terms of the filters
// that produced it.
func NoResultsMessage(q Query) string {
	var filters []string

	if q.ServiceType != "" {
		filters = append(filters, strconv.Quote(q.ServiceType))
	}

	switch {
	case q.SearchType == SearchProximity:
		if q.RadiusMiles > 0 {
			filters = append(filters, "within "+formatMiles(q.RadiusMiles)+" miles")
		}
		if q.Zip != "" {
			filters = append(filters, "of zip code "+q.Zip)
		} else {
			filters = append(filters, "near your location")
		}
	case q.Zip != "":
		filters = append(filters, "in zip code "+q.Zip)
	case q.State != "":
		filters = append(filters, "in "+q.State)
	}

	if q.State != "" && q.Zip != "" {
		filters = append(filters, "in "+q.State)
	}

	msg := "No services found"
	if len(filters) > 0 {
		msg += " " + strings.Join(filters, " ")
	}
	return msg + ". Try expanding your search or checking nearby areas."
}

func formatMiles(miles float64) string {
	return strconv.FormatFloat(miles, 'f', -1, 64)
}
