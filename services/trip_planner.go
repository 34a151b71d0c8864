package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
)

// CurrentLocationQuery is the pickup text that means "where I am now".
const CurrentLocationQuery = "Current Location"

// TripPlanner owns the trip of the single user of this process: the last
// planned candidates, the selected one and the navigation session.
type TripPlanner struct {
	synthesizer *RouteSynthesizer
	resolver    Resolver
	places      *PlacesService
	region      models.Region
	logger      *slog.Logger

	mu      sync.Mutex
	plan    *models.TripPlan
	session *NavigationSession
}

func NewTripPlanner(synthesizer *RouteSynthesizer, resolver Resolver, places *PlacesService, region models.Region, logger *slog.Logger) *TripPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripPlanner{
		synthesizer: synthesizer,
		resolver:    resolver,
		places:      places,
		region:      region,
		logger:      logger,
	}
}

// Plan resolves the pickup and drop addresses and synthesizes candidates
// between them. An empty pickup, or CurrentLocationQuery, starts from the
// user's current location.
func (tp *TripPlanner) Plan(ctx context.Context, pickup, drop string) (*models.TripPlan, error) {
	if strings.TrimSpace(drop) == "" {
		return nil, models.ErrMissingDestination
	}

	var start, end models.Coordinate
	g, gctx := errgroup.WithContext(ctx)
	if isCurrentLocation(pickup) {
		start = tp.places.CurrentLocation()
	} else {
		g.Go(func() error {
			c, err := tp.resolver.Resolve(gctx, pickup, tp.region)
			if err != nil {
				return fmt.Errorf("pickup location %q: %w", pickup, err)
			}
			start = c
			return nil
		})
	}
	g.Go(func() error {
		c, err := tp.resolver.Resolve(gctx, drop, tp.region)
		if err != nil {
			return fmt.Errorf("destination %q: %w", drop, err)
		}
		end = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tp.plan(models.Place{Query: pickup, Location: start}, models.Place{Query: drop, Location: end})
}

// PlanCoordinates synthesizes candidates between two known coordinates.
func (tp *TripPlanner) PlanCoordinates(start, end models.Coordinate) (*models.TripPlan, error) {
	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidCoordinate, start, end)
	}
	return tp.plan(models.Place{Location: start}, models.Place{Location: end})
}

func (tp *TripPlanner) plan(pickup, drop models.Place) (*models.TripPlan, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.session != nil && tp.session.Status() == models.InProgress {
		return nil, fmt.Errorf("%w: end the current navigation before planning", models.ErrInvalidState)
	}

	candidates := tp.synthesizer.Synthesize(pickup.Location, drop.Location)
	plan := &models.TripPlan{
		ID:         uuid.NewString(),
		Pickup:     pickup,
		Drop:       drop,
		StraightKm: geo.Distance(pickup.Location, drop.Location),
		Candidates: candidates,
	}
	if rec, ok := Recommended(candidates); ok {
		plan.SelectedRoute = rec.ID
	}

	tp.plan = plan
	tp.session = nil

	tp.logger.Info("trip planned",
		slog.String("plan_id", plan.ID),
		slog.String("pickup", pickup.Location.String()),
		slog.String("drop", drop.Location.String()),
		slog.Float64("straight_km", plan.StraightKm))

	return clonePlan(plan), nil
}

// CurrentPlan returns the last plan.
func (tp *TripPlanner) CurrentPlan() (*models.TripPlan, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.plan == nil {
		return nil, models.ErrNoActivePlan
	}
	return clonePlan(tp.plan), nil
}

// Select marks candidate routeID as the one to navigate.
func (tp *TripPlanner) Select(routeID string) (models.RouteCandidate, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.plan == nil {
		return models.RouteCandidate{}, models.ErrNoActivePlan
	}
	if tp.session != nil && tp.session.Status() == models.InProgress {
		return models.RouteCandidate{}, fmt.Errorf("%w: cannot change route while navigating", models.ErrInvalidState)
	}
	route, ok := tp.plan.Candidate(routeID)
	if !ok {
		return models.RouteCandidate{}, fmt.Errorf("%w: %q", models.ErrRouteNotFound, routeID)
	}
	tp.plan.SelectedRoute = route.ID
	return route, nil
}

// StartNavigation begins a session on the selected candidate. A finished
// session is replaced; a running one is an error.
func (tp *TripPlanner) StartNavigation() (models.NavigationState, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.plan == nil {
		return models.NavigationState{}, models.ErrNoActivePlan
	}
	route, ok := tp.plan.Selected()
	if !ok {
		return models.NavigationState{}, fmt.Errorf("%w: no route selected", models.ErrRouteNotFound)
	}

	session := tp.session
	if session == nil || session.Status().Terminal() {
		session = NewNavigationSession()
	}
	if err := session.Start(route); err != nil {
		return models.NavigationState{}, err
	}
	tp.session = session

	tp.logger.Info("navigation started",
		slog.String("plan_id", tp.plan.ID),
		slog.String("route_id", route.ID),
		slog.String("kind", string(route.Kind)),
		slog.Int("points", len(route.Path)))

	return session.State(), nil
}

// Advance moves the active session steps points forward.
func (tp *TripPlanner) Advance(steps int) (models.NavigationState, error) {
	return tp.move(func(s *NavigationSession) error {
		_, err := s.Advance(steps)
		return err
	})
}

// SetProgress moves the active session to path index.
func (tp *TripPlanner) SetProgress(index int) (models.NavigationState, error) {
	return tp.move(func(s *NavigationSession) error {
		_, err := s.SetProgress(index)
		return err
	})
}

func (tp *TripPlanner) move(fn func(*NavigationSession) error) (models.NavigationState, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.session == nil {
		return models.NavigationState{}, models.ErrNoActiveTrip
	}
	if err := fn(tp.session); err != nil {
		return models.NavigationState{}, err
	}

	state := tp.session.State()
	if state.Status == models.Completed {
		tp.logger.Info("navigation completed", slog.String("route_id", state.RouteID))
	}
	return state, nil
}

// Navigation returns the active session's state.
func (tp *TripPlanner) Navigation() (models.NavigationState, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.session == nil {
		return models.NavigationState{}, models.ErrNoActiveTrip
	}
	return tp.session.State(), nil
}

// EndNavigation cancels a running session, or closes a completed one, and
// returns its final state.
func (tp *TripPlanner) EndNavigation() (models.NavigationState, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.session == nil {
		return models.NavigationState{}, models.ErrNoActiveTrip
	}
	if err := tp.session.Cancel(); err != nil && !errors.Is(err, models.ErrInvalidState) {
		return models.NavigationState{}, err
	}
	state := tp.session.State()
	tp.session = nil

	tp.logger.Info("navigation ended",
		slog.String("route_id", state.RouteID),
		slog.String("status", string(state.Status)),
		slog.Int("progress", state.ProgressIndex))

	return state, nil
}

// Scene gathers what the map renders: a center, the destination, the
// selected route and, optionally, the safe places.
func (tp *TripPlanner) Scene(withSafePlaces bool) Scene {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	scene := Scene{Center: tp.places.CurrentLocation()}
	if tp.plan != nil {
		scene.Center = tp.plan.Pickup.Location
		dest := tp.plan.Drop.Location
		scene.Destination = &dest
		if route, ok := tp.plan.Selected(); ok {
			scene.Route = &route
		}
	}
	if tp.session != nil {
		if pos, ok := tp.session.Position(); ok {
			scene.Center = pos
			scene.Navigating = tp.session.Status() == models.InProgress
		}
	}
	if withSafePlaces {
		for _, p := range tp.places.SafePlaces(SafePlaceFilter{}) {
			scene.SafePlaces = append(scene.SafePlaces, p.SafePlace)
		}
	}
	return scene
}

// Track returns the route to export and the current position, if any.
func (tp *TripPlanner) Track() (models.RouteCandidate, *models.Coordinate, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.session != nil {
		route, _ := tp.session.Route()
		pos, _ := tp.session.Position()
		return route, &pos, nil
	}
	if tp.plan == nil {
		return models.RouteCandidate{}, nil, models.ErrNoActivePlan
	}
	route, ok := tp.plan.Selected()
	if !ok {
		return models.RouteCandidate{}, nil, fmt.Errorf("%w: no route selected", models.ErrRouteNotFound)
	}
	return route, nil, nil
}

func isCurrentLocation(pickup string) bool {
	p := strings.TrimSpace(pickup)
	return p == "" || strings.EqualFold(p, CurrentLocationQuery)
}

func clonePlan(p *models.TripPlan) *models.TripPlan {
	c := *p
	c.Candidates = append([]models.RouteCandidate(nil), p.Candidates...)
	return &c
}
