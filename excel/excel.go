// Package excel reads organization datasets from XLSX workbooks and writes
// search results to them.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/orgsearch"
	"github.com/xuri/excelize/v2"
)

// ReadRows returns the header and data rows of the workbook's first sheet.
// Blank rows are skipped. Rows are padded to the header width because
// trailing empty cells are not stored in the file.
func ReadRows(r io.Reader) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	for _, row := range all {
		if blank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// ParseOrganizations reads organization records from a workbook using the
// same header aliases as CSV ingestion.
func ParseOrganizations(r io.Reader, opts orgsearch.IngestOptions) ([]orgsearch.Organization, error) {
	header, rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return orgsearch.ParseRows(header, rows, opts), nil
}

// Ingest adapts ParseOrganizations to a fetched body.
func Ingest(body string, opts orgsearch.IngestOptions) ([]orgsearch.Organization, error) {
	return ParseOrganizations(strings.NewReader(body), opts)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ResultsSheet is the sheet name used by WriteResults.
const ResultsSheet = "Results"

// WriteResults writes results as a single-sheet workbook.
func WriteResults(w io.Writer, results []orgsearch.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ResultsSheet)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(ResultsSheet)
	if err != nil {
		return err
	}

	headers := []any{
		"Name", "Type", "Address", "City", "State", "Zip", "County",
		"Phone", "Email", "Latitude", "Longitude", "Coordinate Source", "Distance (mi)",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var lat, lon, dist any
		if r.Coordinate != nil {
			lat, lon = r.Coordinate.Latitude, r.Coordinate.Longitude
		}
		if r.Distance != nil {
			dist = *r.Distance
		}
		row := []any{
			r.Name, r.ServiceType, r.Address, r.City, r.State, r.Zip, r.County,
			r.Phone, r.Email, lat, lon, string(r.CoordinateSource), dist,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	_, err = f.WriteTo(w)
	return err
}
