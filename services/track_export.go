package services

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mohamedthameursassi/saferoute/models"
)

const gpxCreator = "saferoute"

// ExportGPX renders route as a GPX 1.1 track. A non-nil position is added
// as a "current position" waypoint.
func ExportGPX(route models.RouteCandidate, position *models.Coordinate) ([]byte, error) {
	segment := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(route.Path))}
	for _, c := range route.Path {
		segment.Points = append(segment.Points, gpx.GPXPoint{
			Point: gpx.Point{Latitude: c.Lat, Longitude: c.Lng},
		})
	}

	doc := &gpx.GPX{
		Creator: gpxCreator,
		Name:    fmt.Sprintf("%s route %s", route.Kind, route.ID),
		Description: fmt.Sprintf("%.1f km, %.0f min, safety %.1f/10, %s roads",
			route.DistanceKm, route.DurationMinutes, route.SafetyScore, route.RoadQuality),
		Tracks: []gpx.GPXTrack{{
			Name:     route.ID,
			Type:     string(route.Kind),
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}
	if position != nil {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{Latitude: position.Lat, Longitude: position.Lng},
			Name:  "current position",
		})
	}

	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}
