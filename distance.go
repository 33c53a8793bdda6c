package orgsearch

import "math"

// EarthRadiusMiles is the mean Earth radius used for distance calculations.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance in miles between two points
// using the haversine formula. The result is not rounded.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// Distance returns the distance in miles between two coordinates.
func Distance(a, b Coordinate) float64 {
	return DistanceMiles(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// RoundDistance rounds a distance to one decimal place for display.
func RoundDistance(miles float64) float64 {
	return math.Round(miles*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
