package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/geocode"
	"github.com/fwojciec/orgsearch/load"
)

// Directory is the loadable query surface used by commands.
type Directory interface {
	orgsearch.Directory
	Load(ctx context.Context) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *orgsearch.Config

	Directory Directory
	Locator   orgsearch.Locator

	// Geocoding table builder.
	Fetcher orgsearch.Fetcher
	Ingest  load.IngestFunc
	Batcher *geocode.Batcher
	Cache   orgsearch.CoordinateCache
	Runs    orgsearch.GeocodeRunService
	Now     func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigPath       string `name:"config" type:"path" env:"ORGSEARCH_CONFIG" help:"Config file (default $XDG_CONFIG_HOME/orgsearch/config.yaml)"`
	DB               string `name:"db" env:"ORGSEARCH_DB" help:"Geocoding cache database path"`
	Dataset          string `name:"dataset" env:"ORGSEARCH_DATASET" help:"Organization dataset (CSV or XLSX, URL or path)"`
	ZipTable         string `name:"zip-table" env:"ORGSEARCH_ZIP_TABLE" help:"Zip coordinate table (URL or path)"`
	CityTable        string `name:"city-table" env:"ORGSEARCH_CITY_TABLE" help:"City coordinate table (URL or path)"`
	RequireZip       bool   `name:"require-zip" env:"ORGSEARCH_REQUIRE_ZIP" help:"Drop records without a zip code"`
	CoordinateSource string `name:"coordinate-source" env:"ORGSEARCH_COORDINATE_SOURCE" help:"Coordinate source: static or geocoding"`
	Verbose          bool   `short:"v" env:"ORGSEARCH_VERBOSE" help:"Enable debug logging"`

	Search  SearchCmd  `cmd:"" help:"Search organizations by zip code, state or service type"`
	Nearby  NearbyCmd  `cmd:"" help:"Find organizations within a radius"`
	Filters FiltersCmd `cmd:"" help:"List states and service types in the dataset"`
	Status  StatusCmd  `cmd:"" help:"Load the dataset and report readiness"`
	Geocode GeocodeCmd `cmd:"" help:"Build a coordinate table by geocoding the dataset"`
	Runs    RunsCmd    `cmd:"" help:"List recorded geocoding runs"`
}

// Apply overrides cfg with every flag that was set.
func (c *CLI) Apply(cfg *orgsearch.Config) {
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.Dataset != "" {
		cfg.DatasetURL = c.Dataset
	}
	if c.ZipTable != "" {
		cfg.ZipTableURL = c.ZipTable
	}
	if c.CityTable != "" {
		cfg.CityTableURL = c.CityTable
	}
	if c.RequireZip {
		cfg.RequireZip = true
	}
	if c.CoordinateSource != "" {
		cfg.CoordinateMode = orgsearch.CoordinateMode(c.CoordinateSource)
	}
	if c.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
}

// OutputFlags are shared by commands that print results.
type OutputFlags struct {
	Format string `short:"f" enum:"text,json,markdown,xlsx" default:"text" help:"Output format: text, json, markdown or xlsx"`
	Out    string `short:"o" type:"path" help:"Write output to a file instead of stdout (required for xlsx)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Zip   string `short:"z" help:"Zip code (exact match)"`
	State string `short:"s" help:"State (exact match)"`
	Type  string `short:"t" help:"Service type (exact match)"`

	OutputFlags `embed:""`
}

// NearbyCmd is the "nearby" subcommand.
type NearbyCmd struct {
	Zip    string  `short:"z" xor:"center" help:"Search around a zip code"`
	Here   bool    `xor:"center" help:"Search around your current location"`
	At     string  `xor:"center" placeholder:"LAT,LON" help:"Search around a coordinate"`
	Radius float64 `short:"r" default:"10" help:"Search radius in miles"`
	Type   string  `short:"t" help:"Service type (exact match)"`
	Expand bool    `help:"Double the radius (up to 50 miles) until something is found"`

	OutputFlags `embed:""`
}

// FiltersCmd is the "filters" subcommand.
type FiltersCmd struct {
	Format string `short:"f" enum:"text,json,markdown" default:"text" help:"Output format: text, json or markdown"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Format string `short:"f" enum:"text,json,markdown" default:"json" help:"Output format: text, json or markdown"`
}

// GeocodeCmd is the "geocode" subcommand.
type GeocodeCmd struct {
	Cities  bool   `help:"Geocode city and state pairs instead of zip codes"`
	Out     string `short:"o" type:"path" help:"Output table path (default zip_coordinates.json or city_coordinates.json)"`
	Refresh bool   `help:"Discard cached coordinates of this kind first"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Kind  string `help:"Only show runs of this kind: zip or city"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to show"`
}
