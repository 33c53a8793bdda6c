package main

import (
	"fmt"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/markdown"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	if err := deps.Directory.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", orgsearch.ErrorMessage(err))
		return err
	}
	ds := deps.Directory.Dataset()

	switch c.Format {
	case "text":
		fmt.Fprintf(deps.Stdout, "Search system is ready (%d organizations, checksum %s)\n", ds.Len(), ds.Checksum)
		return nil
	case "markdown":
		return markdown.WriteStatus(deps.Stdout, ds)
	}
	return writeJSON(deps.Stdout, orgsearch.NewReadyEvent(ds))
}
