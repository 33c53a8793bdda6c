package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/excel"
	"github.com/fwojciec/orgsearch/fs"
	"github.com/fwojciec/orgsearch/geocode"
	orghttp "github.com/fwojciec/orgsearch/http"
	"github.com/fwojciec/orgsearch/load"
	"github.com/fwojciec/orgsearch/locate"
	"github.com/fwojciec/orgsearch/nominatim"
	orgslog "github.com/fwojciec/orgsearch/slog"
	"github.com/fwojciec/orgsearch/sqlite"
	"github.com/fwojciec/orgsearch/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is populated during Run from defaults, the config file and flags.
	Config *orgsearch.Config

	// SQLite database backing the geocoding cache and run history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("orgsearch"),
		kong.Description("Search a directory of service organizations by location."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'orgsearch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg := orgsearch.NewConfig()
	if err := yaml.LoadConfig(cli.ConfigPath, cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %s", orgsearch.ErrorMessage(err))
	}
	m.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	deps.Logger = logger
	deps.Config = cfg

	fetcher := orgslog.NewLoggingFetcher(&load.SourceFetcher{
		Remote: orghttp.NewFetcher(orghttp.WithUserAgent(cfg.UserAgent)),
		Local:  fs.NewFetcher(),
	}, logger)
	deps.Fetcher = fetcher
	deps.Ingest = ingestFor(cfg.DatasetURL)

	needsDB := cmd == "geocode" || cmd == "runs" ||
		(cfg.CoordinateMode == orgsearch.ModeGeocoding && cfg.CacheGeocoding)
	if needsDB {
		if err := m.openDB(cfg.DBPath); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ORGSEARCH_DB to use a different database path\n")
			return err
		}
		defer m.Close()

		deps.Cache = sqlite.NewCoordinateCache(m.DB)
		deps.Runs = sqlite.NewGeocodeRunService(m.DB)
	}

	if cmd == "geocode" || cfg.CoordinateMode == orgsearch.ModeGeocoding {
		deps.Batcher = newBatcher(cfg, deps.Cache, logger)
		if cmd == "geocode" {
			deps.Batcher.SaveToCache = deps.Cache != nil
			deps.Batcher.RetryDelays = geocode.DefaultRetryDelays()
		}
	}

	loader := load.NewLoader(cfg, fetcher)
	loader.Ingest = deps.Ingest
	loader.Batcher = deps.Batcher

	dir := load.NewDirectory(orgslog.NewLoggingDatasetLoader(loader, logger))
	dir.OnReady = func(ev orgsearch.ReadyEvent) {
		logger.Info(ev.Message, "type", ev.Type, "count", ev.DataCount)
	}
	deps.Directory = dir

	deps.Locator = newLocator(cfg, logger)

	return kongCtx.Run(deps)
}

// openDB opens the cache database, creating its directory when needed.
func (m *Main) openDB(path string) error {
	if path == "" {
		path = yaml.DefaultDBPath()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// ingestFor picks the dataset parser from the source's extension.
func ingestFor(source string) load.IngestFunc {
	if strings.EqualFold(filepath.Ext(source), ".xlsx") {
		return excel.Ingest
	}
	return load.ParseCSV
}

func newBatcher(cfg *orgsearch.Config, cache orgsearch.CoordinateCache, logger *slog.Logger) *geocode.Batcher {
	client := nominatim.NewClient(nominatim.WithUserAgent(cfg.UserAgent))
	return &geocode.Batcher{
		Geocoder:    orgslog.NewLoggingGeocoder(client, logger),
		Cache:       cache,
		SaveToCache: cache != nil && cfg.CacheGeocoding,
		RateLimiter: geocode.NewProviderLimiter(cfg.GeocodeRate),
		BatchSize:   cfg.GeocodeBatchSize,
		BatchDelay:  cfg.GeocodeBatchDelay,
		Logger: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
}

func newLocator(cfg *orgsearch.Config, logger *slog.Logger) orgsearch.Locator {
	if !cfg.LocationEnabled {
		return locate.Disabled{}
	}
	c := locate.NewCached(orgslog.NewLoggingLocator(orghttp.NewIPLocator(orghttp.DefaultIPLocatorURL), logger))
	c.Timeout = cfg.LocateTimeout
	c.MaxAge = cfg.LocateMaxAge
	return c
}
