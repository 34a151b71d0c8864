package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
)

var (
	mgRoad     = models.Coordinate{Lat: 12.9716, Lng: 77.5946}
	cubbonPark = models.Coordinate{Lat: 12.98, Lng: 77.61}
)

type envelope struct {
	Success   bool             `json:"success"`
	Data      json.RawMessage  `json:"data"`
	Error     *models.ApiError `json:"error"`
	Meta      *models.MetaData `json:"meta"`
	RequestID string           `json:"request_id"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fixtures := models.DefaultFixtures()
	places := services.NewPlacesService(fixtures)
	resolver := services.NewStaticResolver(map[string]models.Coordinate{
		"mg road":     mgRoad,
		"cubbon park": cubbonPark,
	})
	planner := services.NewTripPlanner(services.NewRouteSynthesizer(services.WithPathPoints(49)), resolver, places, models.BengaluruRegion, nil)

	return NewRouter(nil, nil,
		NewRoutingHandler(planner, resolver, models.BengaluruRegion, nil),
		NewNavigationHandler(planner, 5, nil),
		NewPlacesHandler(places),
	)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && env.Success {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestPlanRoutesByAddress(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Pickup: "MG Road", Drop: "Cubbon Park"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var plan models.TripPlan
	env := decode(t, w, &plan)
	assert.True(t, env.Success)
	assert.Equal(t, w.Header().Get(RequestIDHeader), env.RequestID)
	require.NotNil(t, env.Meta)
	assert.Equal(t, APIVersion, env.Meta.ApiVersion)
	assert.NotEmpty(t, env.Meta.ProcessTime)

	require.Len(t, plan.Candidates, 3)
	assert.Equal(t, "r2", plan.SelectedRoute)
	assert.Equal(t, mgRoad, plan.Pickup.Location)
	assert.InDelta(t, 1.91, plan.StraightKm, 0.02)

	w = do(t, r, http.MethodGet, "/api/routes", nil)
	var current models.TripPlan
	decode(t, w, &current)
	assert.Equal(t, plan.ID, current.ID)
}

func TestPlanRoutesByCoordinates(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Start: &mgRoad, End: &cubbonPark})
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.TripPlan
	decode(t, w, &plan)
	assert.Equal(t, cubbonPark, plan.Drop.Location)
}

func TestPlanRoutesErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"malformed json", `{"drop":`, http.StatusBadRequest, "bad_request"},
		{"missing destination", models.PlanRequest{Pickup: "mg road"}, http.StatusBadRequest, "bad_request"},
		{"unknown address", models.PlanRequest{Drop: "atlantis"}, http.StatusNotFound, "address_not_found"},
		{"start without end", models.PlanRequest{Start: &mgRoad}, http.StatusBadRequest, "bad_request"},
		{"invalid coordinate", models.PlanRequest{Start: &models.Coordinate{Lat: 100}, End: &cubbonPark}, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestRouter(t), http.MethodPost, "/api/routes", tt.body)
			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w, nil)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCurrentPlanBeforePlanning(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/routes", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no_active_plan", decode(t, w, nil).Error.Code)
}

func TestSelectRoute(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Start: &mgRoad, End: &cubbonPark})

	w := do(t, r, http.MethodPost, "/api/routes/r3/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var route models.RouteCandidate
	decode(t, w, &route)
	assert.Equal(t, models.Smoothest, route.Kind)

	w = do(t, r, http.MethodPost, "/api/routes/r7/select", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route_not_found", decode(t, w, nil).Error.Code)
}

func TestRouteKinds(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/routes/kinds", nil)
	var got struct {
		Kinds       []models.RouteKind `json:"kinds"`
		Recommended models.RouteKind   `json:"recommended"`
	}
	decode(t, w, &got)
	assert.Equal(t, models.RouteKinds, got.Kinds)
	assert.Equal(t, models.Safest, got.Recommended)
}

func TestNavigationFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/navigation/advance", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no_active_trip", decode(t, w, nil).Error.Code)

	do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Start: &mgRoad, End: &cubbonPark})

	var state models.NavigationState
	w = do(t, r, http.MethodPost, "/api/navigation/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &state)
	assert.Equal(t, models.InProgress, state.Status)
	assert.Equal(t, 50, state.PathLength)

	w = do(t, r, http.MethodPost, "/api/navigation/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode(t, w, nil).Error.Code)

	// No body: the handler's default step.
	w = do(t, r, http.MethodPost, "/api/navigation/advance", nil)
	decode(t, w, &state)
	assert.Equal(t, 5, state.ProgressIndex)

	steps := 10
	w = do(t, r, http.MethodPost, "/api/navigation/advance", models.AdvanceRequest{Steps: &steps})
	decode(t, w, &state)
	assert.Equal(t, 15, state.ProgressIndex)

	w = do(t, r, http.MethodPut, "/api/navigation/progress", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	index := 21
	w = do(t, r, http.MethodPut, "/api/navigation/progress", models.ProgressRequest{Index: &index})
	decode(t, w, &state)
	assert.Equal(t, 21, state.ProgressIndex)
	require.NotNil(t, state.Remaining)
	require.NotNil(t, state.Position)

	w = do(t, r, http.MethodGet, "/api/navigation", nil)
	var again models.NavigationState
	decode(t, w, &again)
	assert.Equal(t, state, again)

	index = 1000
	w = do(t, r, http.MethodPut, "/api/navigation/progress", models.ProgressRequest{Index: &index})
	decode(t, w, &state)
	assert.Equal(t, models.Completed, state.Status)
	assert.Equal(t, 49, state.ProgressIndex)
	assert.Equal(t, 0.0, state.Remaining.DistanceKm)

	w = do(t, r, http.MethodPost, "/api/navigation/advance", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, "/api/navigation", nil)
	decode(t, w, &state)
	assert.Equal(t, models.Completed, state.Status)

	w = do(t, r, http.MethodGet, "/api/navigation", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMapScene(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Start: &mgRoad, End: &cubbonPark})

	w := do(t, r, http.MethodGet, "/api/map/scene?safe_places=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 7)

	w = do(t, r, http.MethodGet, "/api/map/scene?safe_places=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackGPX(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/navigation/track.gpx", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	do(t, r, http.MethodPost, "/api/routes", models.PlanRequest{Start: &mgRoad, End: &cubbonPark})
	do(t, r, http.MethodPost, "/api/navigation/start", nil)

	w = do(t, r, http.MethodGet, "/api/navigation/track.gpx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/gpx+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "r2.gpx")

	doc, err := gpx.ParseBytes(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Tracks, 1)
	assert.Len(t, doc.Waypoints, 1)
}

func TestGeocode(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/geocode?q=Cubbon+Park", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var place models.Place
	decode(t, w, &place)
	assert.Equal(t, cubbonPark, place.Location)

	w = do(t, r, http.MethodGet, "/api/geocode?q=atlantis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/geocode", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDistance(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/distance?from=12.9716,77.5946&to=12.98,77.61", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.DistanceResponse
	decode(t, w, &got)
	assert.InDelta(t, 1.91, got.DistanceKm, 0.02)

	w = do(t, r, http.MethodGet, "/api/distance?from=12.9716&to=12.98,77.61", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSafePlaces(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/places/safe?lat=12.9780&lng=77.5920&type=police", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var places []models.SafePlaceDistance
	env := decode(t, w, &places)
	require.Len(t, places, 2)
	assert.Equal(t, "sp1", places[0].ID)
	require.NotNil(t, env.Meta.ResultCount)
	assert.Equal(t, 2, *env.Meta.ResultCount)

	w = do(t, r, http.MethodGet, "/api/places/safe?type=fire_station", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/places/safe?lat=12.97", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/places/safe?open=true", nil)
	decode(t, w, &places)
	assert.Len(t, places, 4)
}

func TestIncidentsContactsProfile(t *testing.T) {
	r := newTestRouter(t)

	var incidents []models.SafetyIncident
	decode(t, do(t, r, http.MethodGet, "/api/places/incidents?severity=low", nil), &incidents)
	require.Len(t, incidents, 1)
	assert.Equal(t, models.IncidentSuspicious, incidents[0].Type)

	w := do(t, r, http.MethodGet, "/api/places/incidents?severity=extreme", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var contacts []models.TrustedContact
	decode(t, do(t, r, http.MethodGet, "/api/contacts", nil), &contacts)
	assert.Len(t, contacts, 3)

	var profile models.UserProfile
	decode(t, do(t, r, http.MethodGet, "/api/profile", nil), &profile)
	assert.Equal(t, "Priya Sharma", profile.Name)
}

func TestClassifyUpstreamError(t *testing.T) {
	status, code := classify(&services.HTTPError{StatusCode: 503, Status: "503 Service Unavailable"})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "geocoder_unavailable", code)

	status, _ = classify(models.ErrInvalidRoute)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
