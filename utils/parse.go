package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohamedthameursassi/saferoute/models"
)

func ParseRouteKind(input string) models.RouteKind {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "fastest", "fast", "quick":
		return models.Fastest
	case "safest", "safe":
		return models.Safest
	case "smoothest", "smooth", "comfort":
		return models.Smoothest
	default:
		return models.Unknown
	}
}

// ParseCoord parses "lat,lng", e.g. "12.9716,77.5946".
func ParseCoord(input string) (models.Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrInvalidCoordinate, input)
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrInvalidCoordinate, input)
	}

	c := models.Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return models.Coordinate{}, fmt.Errorf("%w: %q out of range", models.ErrInvalidCoordinate, input)
	}
	return c, nil
}
