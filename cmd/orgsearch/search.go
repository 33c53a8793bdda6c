package main

import (
	"fmt"

	"github.com/fwojciec/orgsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if err := deps.Directory.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	q := orgsearch.NewFilterQuery(c.Zip, c.State, c.Type)
	results, err := deps.Directory.Query(q)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}

	if err := writeResults(deps, c.OutputFlags, q, results); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	return nil
}
