package orgsearch

import (
	"log/slog"
	"time"
)

// CoordinateMode selects how organization coordinates are obtained.
type CoordinateMode string

// CoordinateMode constants.
const (
	// ModeStatic reads precomputed zip and city tables.
	ModeStatic CoordinateMode = "static"
	// ModeGeocoding geocodes dataset zips through a Geocoder, using the cache.
	ModeGeocoding CoordinateMode = "geocoding"
)

// Default configuration values.
const (
	DefaultDatasetURL        = "data.csv"
	DefaultZipTableURL       = "zip_coordinates.json"
	DefaultCityTableURL      = "city_coordinates.json"
	DefaultGeocodeBatchSize  = 5
	DefaultGeocodeBatchDelay = time.Second
	DefaultGeocodeRate       = 1.0
	DefaultUserAgent         = "OrganizationSearch/1.0"
	DefaultLocateTimeout     = 15 * time.Second
	DefaultLocateMaxAge      = 5 * time.Minute
	DefaultRadiusMiles       = 10.0
)

// Config holds all runtime settings.
type Config struct {
	DatasetURL   string
	ZipTableURL  string
	CityTableURL string // empty disables the city table
	RequireZip   bool

	CoordinateMode CoordinateMode
	CacheGeocoding bool
	DBPath         string

	GeocodeBatchSize  int
	GeocodeBatchDelay time.Duration
	GeocodeRate       float64 // requests per second per provider
	UserAgent         string

	LocationEnabled bool
	LocateTimeout   time.Duration
	LocateMaxAge    time.Duration

	LogLevel slog.Level
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		DatasetURL:        DefaultDatasetURL,
		ZipTableURL:       DefaultZipTableURL,
		CityTableURL:      DefaultCityTableURL,
		CoordinateMode:    ModeStatic,
		CacheGeocoding:    true,
		GeocodeBatchSize:  DefaultGeocodeBatchSize,
		GeocodeBatchDelay: DefaultGeocodeBatchDelay,
		GeocodeRate:       DefaultGeocodeRate,
		UserAgent:         DefaultUserAgent,
		LocationEnabled:   true,
		LocateTimeout:     DefaultLocateTimeout,
		LocateMaxAge:      DefaultLocateMaxAge,
		LogLevel:          slog.LevelWarn,
	}
}

// Validate returns EINVALID describing the first invalid setting.
func (c *Config) Validate() error {
	if c.DatasetURL == "" {
		return Errorf(EINVALID, "dataset location required")
	}
	switch c.CoordinateMode {
	case ModeStatic:
		if c.ZipTableURL == "" {
			return Errorf(EINVALID, "zip table location required")
		}
	case ModeGeocoding:
	default:
		return Errorf(EINVALID, "coordinate source must be %q or %q", ModeStatic, ModeGeocoding)
	}
	if c.GeocodeBatchSize <= 0 {
		return Errorf(EINVALID, "geocode batch size must be positive")
	}
	if c.GeocodeBatchDelay < 0 {
		return Errorf(EINVALID, "geocode batch delay must not be negative")
	}
	if c.GeocodeRate <= 0 {
		return Errorf(EINVALID, "geocode rate must be positive")
	}
	if c.LocateTimeout <= 0 {
		return Errorf(EINVALID, "locate timeout must be positive")
	}
	if c.LocateMaxAge < 0 {
		return Errorf(EINVALID, "locate max age must not be negative")
	}
	return nil
}
