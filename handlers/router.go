package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Registrar is implemented by every handler in this package.
type Registrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewRouter builds the engine with recovery, request ids, access logging,
// CORS and the health check, then lets each handler add its routes.
func NewRouter(logger *slog.Logger, corsOrigins []string, handlers ...Registrar) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	config := cors.DefaultConfig()
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = corsOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", RequestIDHeader)
	config.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	for _, h := range handlers {
		h.RegisterRoutes(r)
	}
	return r
}
