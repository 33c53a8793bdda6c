package orgsearch

// Resolve attaches coordinates to every organization.
//
// A zip table hit wins over a city table hit. Organizations matching neither
// keep a nil coordinate and SourceNone. The input order is preserved.
func Resolve(orgs []Organization, table *CoordinateTable) []GeocodedOrganization {
	out := make([]GeocodedOrganization, len(orgs))
	for i, org := range orgs {
		out[i] = GeocodedOrganization{
			Organization:     org,
			CoordinateSource: SourceNone,
		}
		if table == nil {
			continue
		}

		if zip := NormalizeZip(org.Zip); zip != "" {
			if c, ok := table.Zips[zip]; ok {
				out[i].Coordinate = &c
				out[i].CoordinateSource = SourceZip
				continue
			}
		}

		if table.Cities != nil {
			if c, ok := table.Cities[org.CityKey()]; ok {
				out[i].Coordinate = &c
				out[i].CoordinateSource = SourceCity
			}
		}
	}
	return out
}
