package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/orgsearch"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := orgsearch.GeocodeRunFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind := orgsearch.CoordinateSource(c.Kind)
		if kind != orgsearch.SourceZip && kind != orgsearch.SourceCity {
			err := orgsearch.Errorf(orgsearch.EINVALID, "kind must be zip or city")
			fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
			return err
		}
		filter.Kind = &kind
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No geocoding runs found. Use 'orgsearch geocode' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-4s  %s  %d/%d ok  %d cached  %d failed\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Provider,
			r.Succeeded, r.Requested, r.Cached, r.Failed)
		if len(r.FailedKeys) > 0 {
			fmt.Fprintf(deps.Stdout, "    failed: %s\n", strings.Join(r.FailedKeys, "; "))
		}
	}
	return nil
}
