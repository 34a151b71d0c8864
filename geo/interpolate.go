package geo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/mohamedthameursassi/saferoute/models"
)

// DefaultBend is the control point offset as a fraction of the chord length.
const DefaultBend = 0.2

// Curve describes how far, and to which side of the start→end chord, the
// Bézier control point is pushed.
type Curve struct {
	Bend float64
	Side float64 // +1 left of the chord, -1 right
}

// Interpolate returns pointCount+1 points on a quadratic Bézier curve from
// start to end. The bend side is derived from the endpoints, so identical
// inputs always give identical paths.
func Interpolate(start, end models.Coordinate, pointCount int) []models.Coordinate {
	return InterpolateCurve(start, end, pointCount, Curve{Bend: DefaultBend, Side: SideFor(start, end)})
}

// InterpolateCurve is Interpolate with an explicit curve. A pointCount below
// one yields just the two endpoints.
func InterpolateCurve(start, end models.Coordinate, pointCount int, curve Curve) []models.Coordinate {
	if pointCount < 1 {
		return []models.Coordinate{start, end}
	}

	control := ControlPoint(start, end, curve)

	path := make([]models.Coordinate, pointCount+1)
	for i := 0; i <= pointCount; i++ {
		t := float64(i) / float64(pointCount)
		u := 1 - t
		a, b, c := u*u, 2*u*t, t*t
		path[i] = models.Coordinate{
			Lat: a*start.Lat + b*control.Lat + c*end.Lat,
			Lng: a*start.Lng + b*control.Lng + c*end.Lng,
		}
	}
	// Pin the endpoints so float rounding can never move them.
	path[0] = start
	path[pointCount] = end

	return path
}

// ControlPoint returns the chord midpoint displaced perpendicular to the
// chord by curve.Bend times the chord length.
func ControlPoint(start, end models.Coordinate, curve Curve) models.Coordinate {
	dLat := end.Lat - start.Lat
	dLng := end.Lng - start.Lng
	side := curve.Side
	if side == 0 {
		side = 1
	}
	return models.Coordinate{
		Lat: (start.Lat+end.Lat)/2 - side*curve.Bend*dLng,
		Lng: (start.Lng+end.Lng)/2 + side*curve.Bend*dLat,
	}
}

// SideFor picks a bend side from a hash of the endpoint pair.
func SideFor(start, end models.Coordinate) float64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(start.Lat))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(start.Lng))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(end.Lat))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(end.Lng))
	if xxhash.Sum64(buf[:])&1 == 0 {
		return 1
	}
	return -1
}
