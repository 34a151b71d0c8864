package services

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
)

var (
	mgRoad     = models.Coordinate{Lat: 12.9716, Lng: 77.5946}
	cubbonPark = models.Coordinate{Lat: 12.9800, Lng: 77.6100}
)

func TestSynthesizeKindsAndOrder(t *testing.T) {
	routes := NewRouteSynthesizer().Synthesize(mgRoad, cubbonPark)
	require.Len(t, routes, 3)

	ids := map[string]bool{}
	for i, r := range routes {
		assert.Equal(t, models.RouteKinds[i], r.Kind)
		assert.Greater(t, r.DistanceKm, 0.0)
		assert.Greater(t, r.DurationMinutes, 0.0)
		assert.GreaterOrEqual(t, r.SafetyScore, 0.0)
		assert.LessOrEqual(t, r.SafetyScore, 10.0)
		require.Len(t, r.Path, DefaultPathPoints+1)
		assert.Equal(t, mgRoad, r.Path[0])
		assert.Equal(t, cubbonPark, r.Path[len(r.Path)-1])
		ids[r.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestSynthesizeBengaluruScenario(t *testing.T) {
	straight := geo.Distance(mgRoad, cubbonPark)
	assert.InDelta(t, 1.9, straight, 0.05)

	routes := NewRouteSynthesizer().Synthesize(mgRoad, cubbonPark)
	fastest, safest, smoothest := routes[0], routes[1], routes[2]

	assert.InDelta(t, straight*1.3, fastest.DistanceKm, 1e-9)
	assert.InDelta(t, 2.5, fastest.DistanceKm, 0.05)
	// ceil(2.486/35*60) = ceil(4.26)
	assert.Equal(t, 5.0, fastest.DurationMinutes)

	assert.InDelta(t, straight*1.3*1.15, safest.DistanceKm, 1e-9)
	assert.Equal(t, 6.0, safest.DurationMinutes)
	assert.Equal(t, 9.2, safest.SafetyScore)
	assert.Equal(t, models.RoadGood, safest.RoadQuality)

	assert.InDelta(t, straight*1.3*1.1, smoothest.DistanceKm, 1e-9)
	assert.Equal(t, 6.0, smoothest.DurationMinutes)
	assert.Equal(t, models.RoadAverage, smoothest.RoadQuality)
}

func TestSynthesizeCoincidentEndpoints(t *testing.T) {
	routes := NewRouteSynthesizer().Synthesize(mgRoad, mgRoad)
	require.Len(t, routes, 3)
	for i, r := range routes {
		assert.GreaterOrEqual(t, r.DistanceKm, MinRouteKm*RouteProfiles[i].DistanceMultiplier-1e-12)
		assert.Greater(t, r.DurationMinutes, 0.0)
		assert.GreaterOrEqual(t, len(r.Path), 2)
	}
	assert.Equal(t, 1.0, routes[0].DurationMinutes)
}

func TestSynthesizeDistinctPaths(t *testing.T) {
	routes := NewRouteSynthesizer().Synthesize(mgRoad, cubbonPark)
	mid := DefaultPathPoints / 2
	assert.NotEqual(t, routes[0].Path[mid], routes[1].Path[mid])
	assert.NotEqual(t, routes[0].Path[mid], routes[2].Path[mid])
	assert.NotEqual(t, routes[1].Path[mid], routes[2].Path[mid])
}

func TestSynthesizeDeterministicByDefault(t *testing.T) {
	rs := NewRouteSynthesizer()
	assert.Equal(t, rs.Synthesize(mgRoad, cubbonPark), rs.Synthesize(mgRoad, cubbonPark))
}

func TestSynthesizeRandomCurves(t *testing.T) {
	rs := NewRouteSynthesizer(WithRandomCurves(rand.New(rand.NewPCG(1, 2))), WithPathPoints(20))
	seen := map[models.Coordinate]bool{}
	for i := 0; i < 20; i++ {
		routes := rs.Synthesize(mgRoad, cubbonPark)
		require.Len(t, routes[0].Path, 21)
		assert.Equal(t, mgRoad, routes[0].Path[0])
		assert.Equal(t, cubbonPark, routes[0].Path[20])
		seen[routes[0].Path[10]] = true
	}
	// Only the side varies, so the midpoint takes exactly two values.
	assert.Len(t, seen, 2)
}

func TestWithPathPointsIgnoresNonPositive(t *testing.T) {
	rs := NewRouteSynthesizer(WithPathPoints(0))
	assert.Len(t, rs.Synthesize(mgRoad, cubbonPark)[0].Path, DefaultPathPoints+1)
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 2.0, DurationMinutes(1.5, 60))
	assert.Equal(t, 1.0, DurationMinutes(0.5, 35))
	assert.Equal(t, 60.0, DurationMinutes(30, 30))
}

func TestRecommended(t *testing.T) {
	routes := NewRouteSynthesizer().Synthesize(mgRoad, cubbonPark)
	r, ok := Recommended(routes)
	require.True(t, ok)
	assert.Equal(t, models.Safest, r.Kind)

	_, ok = Recommended(nil)
	assert.False(t, ok)
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(models.Smoothest)
	require.True(t, ok)
	assert.Equal(t, 32.0, p.SpeedKmh)

	_, ok = ProfileFor(models.Unknown)
	assert.False(t, ok)
}
