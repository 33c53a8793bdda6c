package orgsearch

import (
	"encoding/json"
	"fmt"
	"time"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate returns an error if the coordinate is outside the valid range.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return Errorf(EINVALID, "latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return Errorf(EINVALID, "longitude %v out of range", c.Longitude)
	}
	return nil
}

// CoordinateSource records where a resolved coordinate came from.
type CoordinateSource string

// CoordinateSource constants.
const (
	SourceZip  CoordinateSource = "zip"
	SourceCity CoordinateSource = "city"
	SourceNone CoordinateSource = "none"
)

// GeocodedOrganization is an Organization with its resolved location.
// Coordinate is nil when no lookup table matched.
type GeocodedOrganization struct {
	Organization
	Coordinate       *Coordinate      `json:"coordinate"`
	CoordinateSource CoordinateSource `json:"coordinateSource"`
}

// CoordinateTable holds zip and city lookup data.
// Cities is nil when no city table is available.
type CoordinateTable struct {
	Zips   map[string]Coordinate
	Cities map[string]Coordinate
}

// LookupZip returns the coordinate for a zip code.
// The zip is normalized to digits first.
// Returns ENOTFOUND if the zip is not in the table.
func (t *CoordinateTable) LookupZip(zip string) (Coordinate, error) {
	normalized := NormalizeZip(zip)
	if t != nil && normalized != "" {
		if c, ok := t.Zips[normalized]; ok {
			return c, nil
		}
	}
	return Coordinate{}, Errorf(ENOTFOUND, "No coordinates found for zip code %s", zip)
}

// TableTimeFormat is the layout of TableMetadata.GeneratedAt.
const TableTimeFormat = "2006-01-02 15:04:05"

// TableMetadata describes how a coordinate table file was generated.
type TableMetadata struct {
	TotalProcessed int    `json:"total_processed"`
	Successful     int    `json:"successful"`
	Failed         int    `json:"failed"`
	SuccessRate    string `json:"success_rate"`
	GeneratedAt    string `json:"generated_at"`
	Source         string `json:"source,omitempty"`
}

// ZipTableFile is the JSON layout of a zip coordinate table.
type ZipTableFile struct {
	Metadata    *TableMetadata        `json:"metadata,omitempty"`
	Coordinates map[string]Coordinate `json:"coordinates"`
	FailedZips  []string              `json:"failed_zips,omitempty"`
}

// CityTableFile is the JSON layout of a city coordinate table.
type CityTableFile struct {
	Metadata        *TableMetadata        `json:"metadata,omitempty"`
	CityCoordinates map[string]Coordinate `json:"city_coordinates"`
	FailedCities    []string              `json:"failed_cities,omitempty"`
}

// ParseZipTable decodes a zip coordinate table.
// The document must contain a "coordinates" object; other keys are ignored.
func ParseZipTable(data []byte) (map[string]Coordinate, error) {
	var f struct {
		Coordinates map[string]Coordinate `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode zip table: %w", err)
	}
	if f.Coordinates == nil {
		return nil, fmt.Errorf("decode zip table: missing coordinates object")
	}
	return f.Coordinates, nil
}

// ParseCityTable decodes a city coordinate table.
// The document must contain a "city_coordinates" object; other keys are ignored.
func ParseCityTable(data []byte) (map[string]Coordinate, error) {
	var f struct {
		CityCoordinates map[string]Coordinate `json:"city_coordinates"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode city table: %w", err)
	}
	if f.CityCoordinates == nil {
		return nil, fmt.Errorf("decode city table: missing city_coordinates object")
	}
	return f.CityCoordinates, nil
}

// NewTableMetadata summarizes a geocoding pass over total keys.
func NewTableMetadata(successful, failed int, source string, generatedAt time.Time) *TableMetadata {
	total := successful + failed
	rate := 0.0
	if total > 0 {
		rate = float64(successful) / float64(total) * 100
	}
	return &TableMetadata{
		TotalProcessed: total,
		Successful:     successful,
		Failed:         failed,
		SuccessRate:    fmt.Sprintf("%.1f%%", rate),
		GeneratedAt:    generatedAt.Format(TableTimeFormat),
		Source:         source,
	}
}
