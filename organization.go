package orgsearch

import (
	"regexp"
	"strings"
)

// Unknown is the value assigned to required text fields missing from the source row.
const Unknown = "Unknown"

// Organization represents one row of the source dataset.
// Values are never mutated after ingestion.
type Organization struct {
	Name        string `json:"name"`
	ServiceType string `json:"type"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
	State       string `json:"state"`
	County      string `json:"county,omitempty"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// CityKey returns the "City, ST" key used by city coordinate tables.
func (o *Organization) CityKey() string {
	return CityKey(o.City, o.State)
}

// CityKey formats a city and state as a city coordinate table key.
func CityKey(city, state string) string {
	return city + ", " + state
}

var nonDigit = regexp.MustCompile(`\D`)

// NormalizeZip strips every non-digit character from a zip code.
func NormalizeZip(zip string) string {
	return nonDigit.ReplaceAllString(zip, "")
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidZip reports whether zip is a 5-digit or ZIP+4 code.
func ValidZip(zip string) bool {
	return zipPattern.MatchString(strings.TrimSpace(zip))
}

var fiveDigitZip = regexp.MustCompile(`^\d{5}$`)

// GeocodableZip reports whether a normalized zip can be sent to a geocoding
// provider. Only plain 5-digit codes are looked up.
func GeocodableZip(zip string) bool {
	return fiveDigitZip.MatchString(zip)
}
