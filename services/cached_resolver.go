package services

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mohamedthameursassi/saferoute/models"
)

const DefaultGeocodeCacheSize = 256

// CachedResolver remembers successful lookups of an underlying Resolver and
// collapses concurrent identical queries into one upstream call. Misses are
// not cached.
type CachedResolver struct {
	next  Resolver
	cache *lru.Cache[string, models.Coordinate]
	group singleflight.Group
}

func NewCachedResolver(next Resolver, size int) (*CachedResolver, error) {
	if size <= 0 {
		size = DefaultGeocodeCacheSize
	}
	cache, err := lru.New[string, models.Coordinate](size)
	if err != nil {
		return nil, err
	}
	return &CachedResolver{next: next, cache: cache}, nil
}

func (cr *CachedResolver) Resolve(ctx context.Context, query string, region models.Region) (models.Coordinate, error) {
	key := fmt.Sprintf("%s|%g,%g,%g,%g|%s", normalizeQuery(query),
		region.MinLat, region.MinLng, region.MaxLat, region.MaxLng, region.Country)
	if c, ok := cr.cache.Get(key); ok {
		return c, nil
	}

	v, err, _ := cr.group.Do(key, func() (interface{}, error) {
		c, err := cr.next.Resolve(ctx, query, region)
		if err != nil {
			return nil, err
		}
		cr.cache.Add(key, c)
		return c, nil
	})
	if err != nil {
		return models.Coordinate{}, err
	}
	return v.(models.Coordinate), nil
}

// Len reports the number of cached entries.
func (cr *CachedResolver) Len() int {
	return cr.cache.Len()
}
