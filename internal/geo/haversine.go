// Package geo holds great-circle distance and coordinate synthesis helpers.
package geo

import (
	"math"
	"route-optimizer-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometers.
// A nil coordinate yields +Inf so that it never wins a nearest-point comparison.
func Haversine(a, b *domain.Coordinates) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}
