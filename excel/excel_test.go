package excel_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/excel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an XLSX file whose first sheet holds rows.
func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseOrganizations(t *testing.T) {
	t.Parallel()

	t.Run("reads first sheet through header aliases", func(t *testing.T) {
		t.Parallel()

		buf := workbook(t, [][]any{
			{"Organization", "Housing_Type", "Zip Code", "City", "State", "Email"},
			{"Harbor House", "Shelter", "02134", "Boston", "MA", "info@harbor.org"},
			{"Second Step", "Recovery", "78701", "Austin", "TX"},
		})

		orgs, err := excel.ParseOrganizations(buf, orgsearch.IngestOptions{})

		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, "Harbor House", orgs[0].Name)
		assert.Equal(t, "Shelter", orgs[0].ServiceType)
		assert.Equal(t, "02134", orgs[0].Zip)
		assert.Equal(t, "Second Step", orgs[1].Name)
		assert.Empty(t, orgs[1].Email, "missing trailing cells are empty")
	})

	t.Run("skips blank rows", func(t *testing.T) {
		t.Parallel()

		buf := workbook(t, [][]any{
			{"name", "zip"},
			{"", ""},
			{"A", "12345"},
		})

		orgs, err := excel.ParseOrganizations(buf, orgsearch.IngestOptions{})

		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "A", orgs[0].Name)
	})

	t.Run("rejects non-workbook input", func(t *testing.T) {
		t.Parallel()

		_, err := excel.Ingest("name,zip\nA,12345\n", orgsearch.IngestOptions{})

		assert.Error(t, err)
	})
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	d := 2.5
	results := []orgsearch.Result{
		{
			GeocodedOrganization: orgsearch.GeocodedOrganization{
				Organization:     orgsearch.Organization{Name: "Harbor House", ServiceType: "Shelter", Zip: "02134", City: "Boston", State: "MA"},
				Coordinate:       &orgsearch.Coordinate{Latitude: 42.35, Longitude: -71.13},
				CoordinateSource: orgsearch.SourceZip,
			},
			Distance: &d,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, excel.WriteResults(&buf, results))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.ResultsSheet}, f.GetSheetList())
	rows, err := f.GetRows(excel.ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Harbor House", rows[1][0])
	assert.Equal(t, "zip", rows[1][11])
	assert.Equal(t, "2.5", rows[1][12])
}
