package models

import "fmt"

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" mapstructure:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// Valid reports whether the coordinate lies in the usual lat/lng ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Region is an approximate search box used to bias address lookups.
type Region struct {
	MinLat  float64 `json:"min_lat" mapstructure:"min_lat"`
	MinLng  float64 `json:"min_lng" mapstructure:"min_lng"`
	MaxLat  float64 `json:"max_lat" mapstructure:"max_lat"`
	MaxLng  float64 `json:"max_lng" mapstructure:"max_lng"`
	Country string  `json:"country,omitempty" mapstructure:"country"`
}

// BengaluruRegion is the default search box (roughly the city limits).
var BengaluruRegion = Region{MinLat: 12.8, MinLng: 77.3, MaxLat: 13.2, MaxLng: 77.9, Country: "in"}

func (r Region) IsZero() bool {
	return r.MinLat == 0 && r.MinLng == 0 && r.MaxLat == 0 && r.MaxLng == 0
}

// Contains reports whether c falls inside the box.
func (r Region) Contains(c Coordinate) bool {
	return c.Lat >= r.MinLat && c.Lat <= r.MaxLat && c.Lng >= r.MinLng && c.Lng <= r.MaxLng
}
