package services

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
)

const (
	// RoadIndirection approximates how much longer streets are than the geodesic.
	RoadIndirection = 1.3
	// MinRouteKm keeps coincident endpoints from producing an empty route.
	MinRouteKm = 0.5
	// DefaultPathPoints is the number of interpolation steps per candidate.
	DefaultPathPoints = 200
)

// RecommendedKind is the candidate clients select by default.
const RecommendedKind = models.Safest

// RouteProfile holds the fixed parameters of one route kind.
type RouteProfile struct {
	Kind               models.RouteKind
	DistanceMultiplier float64
	SpeedKmh           float64
	SafetyScore        float64
	RoadQuality        models.RoadQuality
	// Bend scales geo.DefaultBend; a negative value bends to the other side.
	Bend float64
}

// RouteProfiles lists the profiles in presentation order.
var RouteProfiles = []RouteProfile{
	{Kind: models.Fastest, DistanceMultiplier: 1.0, SpeedKmh: 35, SafetyScore: 6.5, RoadQuality: models.RoadGood, Bend: 0.5},
	{Kind: models.Safest, DistanceMultiplier: 1.15, SpeedKmh: 30, SafetyScore: 9.2, RoadQuality: models.RoadGood, Bend: -1},
	{Kind: models.Smoothest, DistanceMultiplier: 1.1, SpeedKmh: 32, SafetyScore: 7.8, RoadQuality: models.RoadAverage, Bend: 1},
}

// ProfileFor returns the profile of kind.
func ProfileFor(kind models.RouteKind) (RouteProfile, bool) {
	for _, p := range RouteProfiles {
		if p.Kind == kind {
			return p, true
		}
	}
	return RouteProfile{}, false
}

type RouteSynthesizer struct {
	pathPoints int
	rng        *rand.Rand
	logger     *slog.Logger
}

type SynthesizerOption func(*RouteSynthesizer)

// WithPathPoints sets the interpolation step count; values below one are ignored.
func WithPathPoints(n int) SynthesizerOption {
	return func(rs *RouteSynthesizer) {
		if n >= 1 {
			rs.pathPoints = n
		}
	}
}

// WithRandomCurves flips the bend side of every candidate with rng instead of
// deriving it from the endpoints. Repeated calls then give different paths.
func WithRandomCurves(rng *rand.Rand) SynthesizerOption {
	return func(rs *RouteSynthesizer) {
		rs.rng = rng
	}
}

func WithSynthesizerLogger(logger *slog.Logger) SynthesizerOption {
	return func(rs *RouteSynthesizer) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

func NewRouteSynthesizer(opts ...SynthesizerOption) *RouteSynthesizer {
	rs := &RouteSynthesizer{
		pathPoints: DefaultPathPoints,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Synthesize returns one candidate per route kind, in presentation order.
func (rs *RouteSynthesizer) Synthesize(start, end models.Coordinate) []models.RouteCandidate {
	straightKm := geo.Distance(start, end)
	baseKm := math.Max(MinRouteKm, straightKm*RoadIndirection)
	side := geo.SideFor(start, end)

	candidates := make([]models.RouteCandidate, 0, len(RouteProfiles))
	for i, p := range RouteProfiles {
		distanceKm := baseKm * p.DistanceMultiplier

		curve := geo.Curve{Bend: geo.DefaultBend * math.Abs(p.Bend), Side: side}
		if p.Bend < 0 {
			curve.Side = -side
		}
		if rs.rng != nil && rs.rng.IntN(2) == 0 {
			curve.Side = -curve.Side
		}

		candidates = append(candidates, models.RouteCandidate{
			ID:              fmt.Sprintf("r%d", i+1),
			Kind:            p.Kind,
			DistanceKm:      distanceKm,
			DurationMinutes: DurationMinutes(distanceKm, p.SpeedKmh),
			SafetyScore:     p.SafetyScore,
			RoadQuality:     p.RoadQuality,
			Path:            geo.InterpolateCurve(start, end, rs.pathPoints, curve),
		})
	}

	rs.logger.Debug("synthesized route candidates",
		slog.String("start", start.String()),
		slog.String("end", end.String()),
		slog.Float64("straight_km", straightKm),
		slog.Float64("base_km", baseKm),
		slog.Int("candidates", len(candidates)))

	return candidates
}

// DurationMinutes is the whole-minute travel time for distanceKm at speedKmh.
func DurationMinutes(distanceKm, speedKmh float64) float64 {
	return math.Ceil(distanceKm / speedKmh * 60)
}

// Recommended returns the candidate of RecommendedKind.
func Recommended(candidates []models.RouteCandidate) (models.RouteCandidate, bool) {
	for _, c := range candidates {
		if c.Kind == RecommendedKind {
			return c, true
		}
	}
	return models.RouteCandidate{}, false
}
