package services

import (
	"fmt"
	"math"

	"github.com/mohamedthameursassi/saferoute/models"
)

// NavigationSession simulates progress along one route. It is owned by a
// single trip and is not safe for concurrent use.
type NavigationSession struct {
	status   models.NavigationStatus
	route    *models.RouteCandidate
	progress int
}

func NewNavigationSession() *NavigationSession {
	return &NavigationSession{status: models.NotStarted}
}

// Start begins following route from its first point.
func (s *NavigationSession) Start(route models.RouteCandidate) error {
	if s.status != models.NotStarted {
		return fmt.Errorf("%w: cannot start while %s", models.ErrInvalidState, s.status)
	}
	if len(route.Path) < 2 {
		return fmt.Errorf("%w: route %q has %d points", models.ErrInvalidRoute, route.ID, len(route.Path))
	}

	s.route = &route
	s.progress = 0
	s.status = models.InProgress
	return nil
}

// SetProgress moves to index, clamped to the path. Reaching the last point
// completes the trip. The returned coordinate is the new position.
func (s *NavigationSession) SetProgress(index int) (models.Coordinate, error) {
	if s.status != models.InProgress {
		return models.Coordinate{}, fmt.Errorf("%w: cannot move while %s", models.ErrInvalidState, s.status)
	}

	last := len(s.route.Path) - 1
	s.progress = max(0, min(index, last))
	if s.progress == last {
		s.status = models.Completed
	}
	return s.route.Path[s.progress], nil
}

// Advance moves steps points forward (or back, for negative steps).
func (s *NavigationSession) Advance(steps int) (models.Coordinate, error) {
	if s.status != models.InProgress {
		return models.Coordinate{}, fmt.Errorf("%w: cannot advance while %s", models.ErrInvalidState, s.status)
	}
	return s.SetProgress(s.progress + steps)
}

// Remaining estimates what is left of the trip from the fraction of path
// points not yet reached.
func (s *NavigationSession) Remaining() (models.Remaining, error) {
	if s.status != models.InProgress && s.status != models.Completed {
		return models.Remaining{}, fmt.Errorf("%w: no remaining estimate while %s", models.ErrInvalidState, s.status)
	}

	fraction := 1.0
	if n := len(s.route.Path); n > 1 {
		fraction = math.Max(0, 1-float64(s.progress)/float64(n-1))
	}
	return models.Remaining{
		DistanceKm: s.route.DistanceKm * fraction,
		EtaMinutes: math.Ceil(s.route.DurationMinutes * fraction),
	}, nil
}

// Cancel abandons the trip. No further mutation is possible afterwards.
func (s *NavigationSession) Cancel() error {
	if s.status.Terminal() {
		return fmt.Errorf("%w: cannot cancel while %s", models.ErrInvalidState, s.status)
	}
	s.status = models.Cancelled
	return nil
}

func (s *NavigationSession) Status() models.NavigationStatus {
	return s.status
}

func (s *NavigationSession) ProgressIndex() int {
	return s.progress
}

// Route returns the route being followed, or false before Start.
func (s *NavigationSession) Route() (models.RouteCandidate, bool) {
	if s.route == nil {
		return models.RouteCandidate{}, false
	}
	return *s.route, true
}

// Position returns the current path point, or false before Start.
func (s *NavigationSession) Position() (models.Coordinate, bool) {
	if s.route == nil {
		return models.Coordinate{}, false
	}
	return s.route.Path[s.progress], true
}

// State returns a snapshot for callers outside the session.
func (s *NavigationSession) State() models.NavigationState {
	state := models.NavigationState{Status: s.status, ProgressIndex: s.progress}
	if s.route == nil {
		return state
	}

	state.RouteID = s.route.ID
	state.RouteKind = s.route.Kind
	state.PathLength = len(s.route.Path)
	pos := s.route.Path[s.progress]
	state.Position = &pos
	if rem, err := s.Remaining(); err == nil {
		state.Remaining = &rem
	}
	return state
}
