package orgsearch

import "strings"

// Header aliases for each record field, in resolution order.
var (
	nameAliases        = []string{"name", "organization", "org name"}
	serviceTypeAliases = []string{"housing_type", "type", "category", "org type", "service type"}
	zipAliases         = []string{"zip", "zip code", "zipcode", "postal code"}
	cityAliases        = []string{"city"}
	stateAliases       = []string{"state", "state code"}
	countyAliases      = []string{"county"}
	phoneAliases       = []string{"phone"}
	emailAliases       = []string{"email"}
	addressAliases     = []string{"address"}
)

// IngestOptions controls which rows become records.
type IngestOptions struct {
	// RequireZip drops rows whose normalized zip is empty.
	// When false every well-formed row is kept.
	RequireZip bool
}

// ParseOrganizations parses comma-delimited text into organization records.
//
// The first non-empty line is the header. Fields are split naively on commas:
// quoted values containing commas are not supported and will shift columns.
// Rows with fewer fields than the header are dropped. Input with fewer than
// two lines yields no records.
func ParseOrganizations(text string, opts IngestOptions) []Organization {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start == len(lines) {
		return nil
	}

	header := splitLine(lines[start])
	rows := make([][]string, 0, len(lines)-start-1)
	for _, line := range lines[start+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}

	return ParseRows(header, rows, opts)
}

// ParseRows builds records from an already-split header and rows.
// Header tokens are trimmed and lower-cased; their order defines column positions.
func ParseRows(header []string, rows [][]string, opts IngestOptions) []Organization {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var orgs []Organization
	for _, values := range rows {
		if len(values) < len(columns) {
			continue
		}

		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			v := strings.TrimSpace(values[i])
			// Duplicated headers keep the first non-blank value.
			if fields[col] == "" {
				fields[col] = v
			}
		}

		org := Organization{
			Name:        resolveField(fields, nameAliases, Unknown),
			ServiceType: resolveField(fields, serviceTypeAliases, Unknown),
			Zip:         NormalizeZip(resolveField(fields, zipAliases, "")),
			City:        resolveField(fields, cityAliases, Unknown),
			State:       resolveField(fields, stateAliases, Unknown),
			County:      resolveField(fields, countyAliases, ""),
			Phone:       resolveField(fields, phoneAliases, ""),
			Email:       resolveField(fields, emailAliases, ""),
			Address:     resolveField(fields, addressAliases, ""),
		}

		if opts.RequireZip && org.Zip == "" {
			continue
		}

		orgs = append(orgs, org)
	}

	return orgs
}

// resolveField returns the first non-blank value among aliases, or def.
func resolveField(fields map[string]string, aliases []string, def string) string {
	for _, alias := range aliases {
		if v := fields[alias]; v != "" {
			return v
		}
	}
	return def
}

func splitLine(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
