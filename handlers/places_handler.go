package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
)

type PlacesHandler struct {
	places *services.PlacesService
}

func NewPlacesHandler(places *services.PlacesService) *PlacesHandler {
	return &PlacesHandler{places: places}
}

func (h *PlacesHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/places/safe", h.SafePlaces)
	r.GET("/api/places/incidents", h.Incidents)
	r.GET("/api/contacts", h.Contacts)
	r.GET("/api/profile", h.Profile)
}

// SafePlaces lists safe places, nearest first when lat and lng are given.
func (h *PlacesHandler) SafePlaces(c *gin.Context) {
	var filter services.SafePlaceFilter

	lat, lng := c.Query("lat"), c.Query("lng")
	if lat != "" || lng != "" {
		near, err := parseLatLng(lat, lng)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Near = &near
	}
	if open := c.Query("open"); open != "" {
		v, err := strconv.ParseBool(open)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.OpenOnly = v
	}
	if t := c.Query("type"); t != "" {
		switch kind := models.SafePlaceType(t); kind {
		case models.PlacePolice, models.PlaceHospital, models.PlacePharmacy:
			filter.Type = kind
		default:
			badRequest(c, errors.New("unknown safe place type "+strconv.Quote(t)))
			return
		}
	}

	respondList(c, h.places.SafePlaces(filter))
}

func (h *PlacesHandler) Incidents(c *gin.Context) {
	severity := models.Severity(c.Query("severity"))
	switch severity {
	case "", models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
	default:
		badRequest(c, errors.New("unknown severity "+strconv.Quote(string(severity))))
		return
	}
	respondList(c, h.places.Incidents(severity))
}

func (h *PlacesHandler) Contacts(c *gin.Context) {
	respondList(c, h.places.Contacts())
}

func (h *PlacesHandler) Profile(c *gin.Context) {
	respond(c, http.StatusOK, h.places.Profile())
}

func parseLatLng(lat, lng string) (models.Coordinate, error) {
	la, err1 := strconv.ParseFloat(lat, 64)
	lo, err2 := strconv.ParseFloat(lng, 64)
	c := models.Coordinate{Lat: la, Lng: lo}
	if err1 != nil || err2 != nil || !c.Valid() {
		return models.Coordinate{}, errors.Join(models.ErrInvalidCoordinate, err1, err2)
	}
	return c, nil
}
