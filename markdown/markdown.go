// Package markdown renders search results and dataset status as Markdown.
package markdown

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/orgsearch"
	"github.com/nao1215/markdown"
)

// WriteResults writes a results table for q. When results is empty the
// no-results message is written as a note instead.
func WriteResults(w io.Writer, q orgsearch.Query, results []orgsearch.Result) error {
	md := markdown.NewMarkdown(w)

	md.H1("Search Results")
	md.PlainText("")
	md.PlainText(describe(q, len(results)))
	md.PlainText("")

	if len(results) == 0 {
		md.Note(orgsearch.NoResultsMessage(q))
		md.PlainText("")
		return md.Build()
	}

	header := []string{"Name", "Type", "Address", "City", "State", "Zip", "Phone", "Email"}
	proximity := q.SearchType == orgsearch.SearchProximity
	if proximity {
		header = append(header, "Distance (mi)")
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{r.Name, r.ServiceType, r.Address, r.City, r.State, r.Zip, r.Phone, r.Email}
		if proximity {
			row = append(row, distance(r.Distance))
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
	return md.Build()
}

// WriteStatus writes a summary of the loaded dataset.
func WriteStatus(w io.Writer, d *orgsearch.Dataset) error {
	md := markdown.NewMarkdown(w)
	stats := d.Stats()

	md.H1("Directory Status")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Organizations", strconv.Itoa(stats.Total)},
			{"Zip matched", strconv.Itoa(stats.ZipMatched)},
			{"City matched", strconv.Itoa(stats.CityMatched)},
			{"Unresolved", strconv.Itoa(stats.Unresolved)},
			{"Checksum", "`" + d.Checksum + "`"},
			{"Loaded", d.LoadedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if states := d.States(); len(states) > 0 {
		md.H2("States")
		md.PlainText("")
		md.BulletList(states...)
		md.PlainText("")
	}
	if types := d.ServiceTypes(); len(types) > 0 {
		md.H2("Service Types")
		md.PlainText("")
		md.BulletList(types...)
		md.PlainText("")
	}
	return md.Build()
}

func describe(q orgsearch.Query, n int) string {
	noun := "results"
	if n == 1 {
		noun = "result"
	}
	if q.SearchType == orgsearch.SearchProximity {
		return fmt.Sprintf("%d %s within %s miles.", n, noun, strconv.FormatFloat(q.RadiusMiles, 'f', -1, 64))
	}
	return fmt.Sprintf("%d %s.", n, noun)
}

func distance(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', 1, 64)
}
