package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/excel"
	"github.com/fwojciec/orgsearch/markdown"
)

// resultsDocument is the JSON output of search and nearby.
type resultsDocument struct {
	Query   orgsearch.Query    `json:"query"`
	Count   int                `json:"count"`
	Results []orgsearch.Result `json:"results"`
	Message string             `json:"message,omitempty"`
}

// writeResults renders results in the requested format to stdout or to out.
func writeResults(deps *Dependencies, flags OutputFlags, q orgsearch.Query, results []orgsearch.Result) error {
	if flags.Format == "xlsx" && flags.Out == "" {
		return orgsearch.Errorf(orgsearch.EINVALID, "xlsx output requires --out")
	}

	var buf bytes.Buffer
	var err error
	switch flags.Format {
	case "json":
		doc := resultsDocument{Query: q, Count: len(results), Results: results}
		if doc.Results == nil {
			doc.Results = []orgsearch.Result{}
		}
		if len(results) == 0 {
			doc.Message = orgsearch.NoResultsMessage(q)
		}
		err = writeJSON(&buf, doc)
	case "markdown":
		err = markdown.WriteResults(&buf, q, results)
	case "xlsx":
		err = excel.WriteResults(&buf, results)
	default:
		writeResultsText(&buf, q, results)
	}
	if err != nil {
		return err
	}

	if flags.Out == "" {
		_, err = deps.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(flags.Out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.Out, err)
	}
	fmt.Fprintf(deps.Stderr, "Wrote %d results to %s\n", len(results), flags.Out)
	return nil
}

func writeResultsText(w io.Writer, q orgsearch.Query, results []orgsearch.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, orgsearch.NoResultsMessage(q))
		return
	}

	if len(results) == 1 {
		fmt.Fprintln(w, "Found 1 organization.")
	} else {
		fmt.Fprintf(w, "Found %d organizations.\n", len(results))
	}

	for _, r := range results {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (%s)\n", r.Name, r.ServiceType)
		fmt.Fprintf(w, "  %s\n", location(r.Organization))
		if r.Phone != "" {
			fmt.Fprintf(w, "  Phone: %s\n", r.Phone)
		}
		if r.Email != "" {
			fmt.Fprintf(w, "  Email: %s\n", r.Email)
		}
		if r.Distance != nil {
			fmt.Fprintf(w, "  Distance: %s miles\n", strconv.FormatFloat(*r.Distance, 'f', 1, 64))
		}
	}
}

// location formats an address line, skipping empty parts.
func location(o orgsearch.Organization) string {
	var parts []string
	if o.Address != "" {
		parts = append(parts, o.Address)
	}
	parts = append(parts, o.City, strings.TrimSpace(o.State+" "+o.Zip))
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
