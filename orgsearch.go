// Package orgsearch provides a local directory search over a list of service
// organizations. It ingests a CSV dataset, attaches coordinates from zip and
// city lookup tables (or a geocoding provider), and answers exact-match and
// proximity queries over the loaded records.
//
// This package contains domain types, the pure query core and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/, http/,
// nominatim/).
package orgsearch
