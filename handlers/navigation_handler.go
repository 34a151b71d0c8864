package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
)

// DefaultAdvanceSteps is used when an advance request names no step count.
const DefaultAdvanceSteps = 1

type NavigationHandler struct {
	planner *services.TripPlanner
	step    int
	logger  *slog.Logger
}

// NewNavigationHandler returns a handler whose advance endpoint moves step
// points when the request body gives none.
func NewNavigationHandler(planner *services.TripPlanner, step int, logger *slog.Logger) *NavigationHandler {
	if step < 1 {
		step = DefaultAdvanceSteps
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationHandler{planner: planner, step: step, logger: logger}
}

func (h *NavigationHandler) RegisterRoutes(r gin.IRouter) {
	nav := r.Group("/api/navigation")
	nav.POST("/start", h.Start)
	nav.POST("/advance", h.Advance)
	nav.PUT("/progress", h.SetProgress)
	nav.GET("", h.State)
	nav.DELETE("", h.End)
	nav.GET("/track.gpx", h.Track)

	r.GET("/api/map/scene", h.Scene)
}

func (h *NavigationHandler) Start(c *gin.Context) {
	h.logger.Debug("=== Received navigation start request ===")

	state, err := h.planner.StartNavigation()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

func (h *NavigationHandler) Advance(c *gin.Context) {
	var req models.AdvanceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	steps := h.step
	if req.Steps != nil {
		steps = *req.Steps
	}

	state, err := h.planner.Advance(steps)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

func (h *NavigationHandler) SetProgress(c *gin.Context) {
	var req models.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	state, err := h.planner.SetProgress(*req.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

func (h *NavigationHandler) State(c *gin.Context) {
	state, err := h.planner.Navigation()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

func (h *NavigationHandler) End(c *gin.Context) {
	h.logger.Debug("=== Received navigation end request ===")

	state, err := h.planner.EndNavigation()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

// Scene replies with a GeoJSON FeatureCollection, not the usual envelope.
func (h *NavigationHandler) Scene(c *gin.Context) {
	withPlaces, err := strconv.ParseBool(c.DefaultQuery("safe_places", "false"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.planner.Scene(withPlaces).FeatureCollection())
}

func (h *NavigationHandler) Track(c *gin.Context) {
	route, pos, err := h.planner.Track()
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := services.ExportGPX(route, pos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+route.ID+`.gpx"`)
	c.Data(http.StatusOK, "application/gpx+xml", data)
}
