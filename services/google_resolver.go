package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/mohamedthameursassi/saferoute/models"
)

// GoogleResolver geocodes with the Google Maps Geocoding API.
type GoogleResolver struct {
	client *maps.Client
}

func NewGoogleResolver(apiKey string, opts ...maps.ClientOption) (*GoogleResolver, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoder needs an API key")
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

func (gr *GoogleResolver) Resolve(ctx context.Context, query string, region models.Region) (models.Coordinate, error) {
	req := &maps.GeocodingRequest{
		Address: query,
		Region:  region.Country,
	}
	if !region.IsZero() {
		req.Bounds = &maps.LatLngBounds{
			NorthEast: maps.LatLng{Lat: region.MaxLat, Lng: region.MaxLng},
			SouthWest: maps.LatLng{Lat: region.MinLat, Lng: region.MinLng},
		}
	}

	results, err := gr.client.Geocode(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrAddressNotFound, query)
		}
		return models.Coordinate{}, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrAddressNotFound, query)
	}

	loc := results[0].Geometry.Location
	return models.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
