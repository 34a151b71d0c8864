package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohamedthameursassi/saferoute/models"
)

// Resolver turns a free-text address into a coordinate. Implementations
// return models.ErrAddressNotFound when nothing matches.
type Resolver interface {
	Resolve(ctx context.Context, query string, region models.Region) (models.Coordinate, error)
}

// StaticResolver answers from a fixed name table. Lookups are case
// insensitive and ignore surrounding whitespace.
type StaticResolver struct {
	places map[string]models.Coordinate
}

func NewStaticResolver(places map[string]models.Coordinate) *StaticResolver {
	r := &StaticResolver{places: make(map[string]models.Coordinate, len(places))}
	for name, c := range places {
		r.places[normalizeQuery(name)] = c
	}
	return r
}

// NewFixtureResolver indexes the safe places and incidents of fixtures by
// name and description.
func NewFixtureResolver(fixtures models.Fixtures) *StaticResolver {
	places := map[string]models.Coordinate{}
	for _, p := range fixtures.SafePlaces {
		places[p.Name] = p.Location
	}
	for _, in := range fixtures.Incidents {
		places[in.Description] = in.Location
	}
	return NewStaticResolver(places)
}

func (r *StaticResolver) Resolve(ctx context.Context, query string, region models.Region) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}
	c, ok := r.places[normalizeQuery(query)]
	if !ok || (!region.IsZero() && !region.Contains(c)) {
		return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrAddressNotFound, query)
	}
	return c, nil
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
