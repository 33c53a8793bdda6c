package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/markdown"
)

type filtersDocument struct {
	States       []string               `json:"states"`
	ServiceTypes []string               `json:"serviceTypes"`
	Coverage     orgsearch.DatasetStats `json:"coverage"`
}

// Run executes the filters command.
func (c *FiltersCmd) Run(deps *Dependencies) error {
	if err := deps.Directory.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	ds := deps.Directory.Dataset()

	switch c.Format {
	case "json":
		return writeJSON(deps.Stdout, filtersDocument{
			States:       ds.States(),
			ServiceTypes: ds.ServiceTypes(),
			Coverage:     ds.Stats(),
		})
	case "markdown":
		return markdown.WriteStatus(deps.Stdout, ds)
	}

	stats := ds.Stats()
	fmt.Fprintf(deps.Stdout, "States: %s\n", joinOrNone(ds.States()))
	fmt.Fprintf(deps.Stdout, "Service types: %s\n", joinOrNone(ds.ServiceTypes()))
	fmt.Fprintf(deps.Stdout, "Coordinates: %d by zip, %d by city, %d unresolved (of %d)\n",
		stats.ZipMatched, stats.CityMatched, stats.Unresolved, stats.Total)
	return nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
