package services

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
)

// Scene is the input of the map renderer. Nothing flows back from it.
type Scene struct {
	Center      models.Coordinate
	Destination *models.Coordinate
	Route       *models.RouteCandidate
	SafePlaces  []models.SafePlace
	Navigating  bool
}

// FeatureCollection encodes the scene as GeoJSON. Every feature carries a
// "role" property: center, destination, route or safe_place.
func (s Scene) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	center := geojson.NewFeature(toPoint(s.Center))
	center.Properties["role"] = "center"
	center.Properties["navigating"] = s.Navigating
	fc.Append(center)

	if s.Destination != nil {
		dest := geojson.NewFeature(toPoint(*s.Destination))
		dest.Properties["role"] = "destination"
		fc.Append(dest)
	}

	if s.Route != nil {
		line := make(orb.LineString, 0, len(s.Route.Path))
		for _, c := range s.Route.Path {
			line = append(line, toPoint(c))
		}
		route := geojson.NewFeature(line)
		route.ID = s.Route.ID
		route.Properties["role"] = "route"
		route.Properties["kind"] = string(s.Route.Kind)
		route.Properties["distance_km"] = s.Route.DistanceKm
		route.Properties["duration_minutes"] = s.Route.DurationMinutes
		route.Properties["safety_score"] = s.Route.SafetyScore
		route.Properties["road_quality"] = string(s.Route.RoadQuality)
		route.Properties["path_km"] = geo.PathLength(s.Route.Path)
		fc.Append(route)
	}

	for _, p := range s.SafePlaces {
		place := geojson.NewFeature(toPoint(p.Location))
		place.ID = p.ID
		place.Properties["role"] = "safe_place"
		place.Properties["type"] = string(p.Type)
		place.Properties["name"] = p.Name
		place.Properties["is_open"] = p.IsOpen
		fc.Append(place)
	}

	return fc
}

func toPoint(c models.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
