// Package yaml loads orgsearch configuration from YAML files.
package yaml

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/orgsearch"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under XDG base directories.
const AppName = "orgsearch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DefaultConfigPath returns $XDG_CONFIG_HOME/orgsearch/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultDBPath returns $XDG_DATA_HOME/orgsearch/orgsearch.db.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, "orgsearch.db")
}

// File is the on-disk configuration layout. Absent keys leave the
// corresponding Config field unchanged.
type File struct {
	Dataset          *string       `yaml:"dataset"`
	ZipTable         *string       `yaml:"zip_table"`
	CityTable        *string       `yaml:"city_table"`
	RequireZip       *bool         `yaml:"require_zip"`
	CoordinateSource *string       `yaml:"coordinate_source"`
	CacheGeocoding   *bool         `yaml:"cache_geocoding"`
	DB               *string       `yaml:"db"`
	Geocode          *GeocodeFile  `yaml:"geocode"`
	Location         *LocationFile `yaml:"location"`
	LogLevel         *string       `yaml:"log_level"`
}

// GeocodeFile holds batch geocoding settings.
type GeocodeFile struct {
	BatchSize  *int           `yaml:"batch_size"`
	BatchDelay *time.Duration `yaml:"batch_delay"`
	Rate       *float64       `yaml:"rate"`
	UserAgent  *string        `yaml:"user_agent"`
}

// LocationFile holds geolocation settings.
type LocationFile struct {
	Enabled *bool          `yaml:"enabled"`
	Timeout *time.Duration `yaml:"timeout"`
	MaxAge  *time.Duration `yaml:"max_age"`
}

// LoadConfigFile reads and decodes a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, orgsearch.Errorf(orgsearch.EINVALID, "invalid config file %s: %v", path, err)
	}
	return &f, nil
}

// LoadConfig overlays the file at path onto cfg.
// A missing file at the default path is not an error; a missing file that
// was explicitly requested is.
func LoadConfig(path string, cfg *orgsearch.Config) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	f, err := LoadConfigFile(path)
	if errors.Is(err, ErrConfigNotFound) && !explicit {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Apply(cfg)
}

// Apply copies every set field onto cfg.
func (f *File) Apply(cfg *orgsearch.Config) error {
	setString(&cfg.DatasetURL, f.Dataset)
	setString(&cfg.ZipTableURL, f.ZipTable)
	setString(&cfg.CityTableURL, f.CityTable)
	setBool(&cfg.RequireZip, f.RequireZip)
	setBool(&cfg.CacheGeocoding, f.CacheGeocoding)
	setString(&cfg.DBPath, f.DB)

	if f.CoordinateSource != nil {
		cfg.CoordinateMode = orgsearch.CoordinateMode(strings.ToLower(*f.CoordinateSource))
	}

	if g := f.Geocode; g != nil {
		if g.BatchSize != nil {
			cfg.GeocodeBatchSize = *g.BatchSize
		}
		if g.BatchDelay != nil {
			cfg.GeocodeBatchDelay = *g.BatchDelay
		}
		if g.Rate != nil {
			cfg.GeocodeRate = *g.Rate
		}
		setString(&cfg.UserAgent, g.UserAgent)
	}

	if l := f.Location; l != nil {
		setBool(&cfg.LocationEnabled, l.Enabled)
		if l.Timeout != nil {
			cfg.LocateTimeout = *l.Timeout
		}
		if l.MaxAge != nil {
			cfg.LocateMaxAge = *l.MaxAge
		}
	}

	if f.LogLevel != nil {
		var level slog.Level
		if err := level.UnmarshalText([]byte(*f.LogLevel)); err != nil {
			return orgsearch.Errorf(orgsearch.EINVALID, "invalid log_level %q", *f.LogLevel)
		}
		cfg.LogLevel = level
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
