package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
	"github.com/mohamedthameursassi/saferoute/utils"
)

type RoutingHandler struct {
	planner  *services.TripPlanner
	resolver services.Resolver
	region   models.Region
	logger   *slog.Logger
}

func NewRoutingHandler(planner *services.TripPlanner, resolver services.Resolver, region models.Region, logger *slog.Logger) *RoutingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoutingHandler{
		planner:  planner,
		resolver: resolver,
		region:   region,
		logger:   logger,
	}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/routes", h.PlanRoutes)
	r.GET("/api/routes", h.CurrentPlan)
	r.GET("/api/routes/kinds", h.GetRouteKinds)
	r.POST("/api/routes/:id/select", h.SelectRoute)
	r.GET("/api/geocode", h.Geocode)
	r.GET("/api/distance", h.Distance)
}

// PlanRoutes synthesizes candidates from addresses or from coordinates.
func (h *RoutingHandler) PlanRoutes(c *gin.Context) {
	h.logger.Debug("=== Received route planning request ===")

	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		plan *models.TripPlan
		err  error
	)
	switch {
	case req.Start != nil && req.End != nil:
		plan, err = h.planner.PlanCoordinates(*req.Start, *req.End)
	case req.Start != nil || req.End != nil:
		badRequest(c, errors.New("start and end must be given together"))
		return
	default:
		plan, err = h.planner.Plan(c.Request.Context(), req.Pickup, req.Drop)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, plan)
	h.logger.Debug("=== Route planning request completed ===", slog.String("plan_id", plan.ID))
}

func (h *RoutingHandler) CurrentPlan(c *gin.Context) {
	plan, err := h.planner.CurrentPlan()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, plan)
}

func (h *RoutingHandler) SelectRoute(c *gin.Context) {
	route, err := h.planner.Select(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, route)
}

func (h *RoutingHandler) GetRouteKinds(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"kinds":       models.RouteKinds,
		"recommended": services.RecommendedKind,
	})
}

func (h *RoutingHandler) Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, errors.New("missing query parameter q"))
		return
	}

	loc, err := h.resolver.Resolve(c.Request.Context(), q, h.region)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, models.Place{Query: q, Location: loc})
}

func (h *RoutingHandler) Distance(c *gin.Context) {
	from, err := utils.ParseCoord(c.Query("from"))
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := utils.ParseCoord(c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}

	respond(c, http.StatusOK, models.DistanceResponse{
		From:       from,
		To:         to,
		DistanceKm: geo.Distance(from, to),
	})
}
