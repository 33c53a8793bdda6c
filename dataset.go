package orgsearch

import (
	"context"
	"slices"
	"time"
)

// Dataset is an immutable snapshot of the loaded directory.
type Dataset struct {
	Organizations []GeocodedOrganization
	Table         *CoordinateTable
	Checksum      string
	LoadedAt      time.Time
}

// Len returns the number of organizations in the snapshot.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Organizations)
}

// DatasetStats counts organizations by coordinate source.
type DatasetStats struct {
	Total       int `json:"total"`
	ZipMatched  int `json:"zipMatched"`
	CityMatched int `json:"cityMatched"`
	Unresolved  int `json:"unresolved"`
}

// Stats returns coordinate coverage counts.
func (d *Dataset) Stats() DatasetStats {
	var s DatasetStats
	if d == nil {
		return s
	}
	for _, org := range d.Organizations {
		s.Total++
		switch org.CoordinateSource {
		case SourceZip:
			s.ZipMatched++
		case SourceCity:
			s.CityMatched++
		default:
			s.Unresolved++
		}
	}
	return s
}

// States returns the sorted distinct states present in the snapshot.
func (d *Dataset) States() []string {
	return d.distinct(func(o GeocodedOrganization) string { return o.State })
}

// ServiceTypes returns the sorted distinct service types present in the snapshot.
func (d *Dataset) ServiceTypes() []string {
	return d.distinct(func(o GeocodedOrganization) string { return o.ServiceType })
}

func (d *Dataset) distinct(field func(GeocodedOrganization) string) []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, org := range d.Organizations {
		v := field(org)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Query validates q and runs it against the snapshot.
func (d *Dataset) Query(q Query) ([]Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var orgs []GeocodedOrganization
	if d != nil {
		orgs = d.Organizations
	}
	if q.SearchType == SearchProximity {
		return FilterNearby(orgs, q)
	}
	return FilterOrganizations(orgs, q), nil
}

// LookupZip resolves a zip code against the snapshot's zip table.
// Returns ENOTFOUND if the zip is unknown.
func (d *Dataset) LookupZip(zip string) (Coordinate, error) {
	if d == nil {
		return Coordinate{}, Errorf(ENOTFOUND, "No coordinates found for zip code %s", zip)
	}
	return d.Table.LookupZip(zip)
}

// ReadyEventType is the type tag of a ReadyEvent.
const ReadyEventType = "search-system-ready"

// ReadyEvent announces that a dataset finished loading.
type ReadyEvent struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	DataCount int    `json:"dataCount"`
}

// NewReadyEvent returns the ready event for a loaded dataset.
func NewReadyEvent(d *Dataset) ReadyEvent {
	return ReadyEvent{
		Type:      ReadyEventType,
		Message:   "Search system is ready",
		DataCount: d.Len(),
	}
}

// DatasetLoader builds a Dataset from its configured sources.
type DatasetLoader interface {
	// Load fetches, ingests and resolves the directory.
	// Returns EUNAVAILABLE if the dataset or zip table cannot be loaded.
	Load(ctx context.Context) (*Dataset, error)
}

// Directory is the query surface over the current dataset.
type Directory interface {
	// Ready reports whether a dataset is loaded.
	Ready() bool

	// Query runs q against the current dataset.
	// Returns EUNAVAILABLE before a dataset is loaded.
	Query(q Query) ([]Result, error)

	// LookupZip resolves a zip code to a search center.
	// Returns EUNAVAILABLE before a dataset is loaded and ENOTFOUND for an
	// unknown zip.
	LookupZip(zip string) (Coordinate, error)

	// Dataset returns the current snapshot, or nil before the first load.
	Dataset() *Dataset
}
