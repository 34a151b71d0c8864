package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
)

const (
	APIVersion      = "1.0"
	RequestIDHeader = "X-Request-ID"

	requestIDKey    = "request_id"
	requestStartKey = "request_start"
)

// RequestID tags every request with an id (taken from X-Request-ID when the
// client sends one) and its start time.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Set(requestStartKey, time.Now())
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one record per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Info("request", attrs...)
		}
	}
}

func meta(c *gin.Context, count *int) *models.MetaData {
	m := &models.MetaData{ApiVersion: APIVersion, ResultCount: count}
	if start, ok := c.Get(requestStartKey); ok {
		m.ProcessTime = fmt.Sprintf("%.2f", float64(time.Since(start.(time.Time)).Microseconds())/1000)
	}
	return m
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.ApiResponse{
		Success:   true,
		Data:      data,
		Meta:      meta(c, nil),
		RequestID: c.GetString(requestIDKey),
	})
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	c.JSON(http.StatusOK, models.ApiResponse{
		Success:   true,
		Data:      items,
		Meta:      meta(c, &n),
		RequestID: c.GetString(requestIDKey),
	})
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, models.ApiResponse{
		Success:   false,
		Error:     &models.ApiError{Code: code, Message: err.Error()},
		Meta:      meta(c, nil),
		RequestID: c.GetString(requestIDKey),
	})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ApiResponse{
		Success:   false,
		Error:     &models.ApiError{Code: "bad_request", Message: "invalid request", Details: err.Error()},
		Meta:      meta(c, nil),
		RequestID: c.GetString(requestIDKey),
	})
}

// classify maps domain errors to an HTTP status and an error code.
func classify(err error) (int, string) {
	var upstream *services.HTTPError
	switch {
	case errors.Is(err, models.ErrInvalidRoute):
		return http.StatusUnprocessableEntity, "invalid_route"
	case errors.Is(err, models.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, models.ErrAddressNotFound):
		return http.StatusNotFound, "address_not_found"
	case errors.Is(err, models.ErrRouteNotFound):
		return http.StatusNotFound, "route_not_found"
	case errors.Is(err, models.ErrNoActivePlan):
		return http.StatusConflict, "no_active_plan"
	case errors.Is(err, models.ErrNoActiveTrip):
		return http.StatusConflict, "no_active_trip"
	case errors.Is(err, models.ErrInvalidCoordinate), errors.Is(err, models.ErrMissingDestination):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "geocoder_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
