// internal/app/system/geo/geo.go

// Package geo provides great-circle distance math for location search.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle (Haversine) distance in kilometers
// between two WGS-84 coordinate pairs given in decimal degrees.
//
// Inputs are not validated; out-of-range coordinates produce mathematically
// defined but meaningless results. The result is always finite and
// non-negative for finite inputs.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimal places for presentation. The search
// pipeline itself compares at full precision.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
