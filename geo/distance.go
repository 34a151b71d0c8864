// Package geo holds the spherical and planar geometry used to build and
// measure route paths.
package geo

import (
	"github.com/umahmood/haversine"

	"github.com/mohamedthameursassi/saferoute/models"
)

// EarthRadiusKm is the mean earth radius the haversine formula uses.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometers.
// Inputs are not range checked.
func Distance(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lng},
		haversine.Coord{Lat: b.Lat, Lon: b.Lng},
	)
	return km
}

// PathLength sums the segment distances along path.
func PathLength(path []models.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}
	return total
}
