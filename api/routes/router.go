// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatly/internal/allocation"
	"seatly/internal/bookings"
	"seatly/internal/fares"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	engine *allocation.Engine
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, engine *allocation.Engine) *Router {
	return &Router{
		config: cfg,
		db:     db,
		engine: engine,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(ginEngine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(ginEngine)

	// API routes
	api := ginEngine.Group(r.config.GetAPIBasePath())
	{
		r.setupBookingRoutes(api)
		r.setupAllocationRoutes(api)
		r.setupFareRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(ginEngine *gin.Engine) {
	ginEngine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"open_legs": len(r.engine.OpenLegIDs()),
			"timestamp": time.Now(),
			"service":   "seatly-backend",
		})
	})

	ginEngine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	ginEngine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupBookingRoutes configures booking import routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.engine)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupAllocationRoutes configures seat map and privacy routes
func (r *Router) setupAllocationRoutes(rg *gin.RouterGroup) {
	allocationController := allocation.NewController(r.engine)

	allocation.SetupAllocationRoutes(rg, allocationController)
}

// setupFareRoutes configures fare aggregation and cart export routes
func (r *Router) setupFareRoutes(rg *gin.RouterGroup) {
	fareService := fares.NewService(r.engine)
	fareController := fares.NewController(fareService)

	fares.SetupFareRoutes(rg, fareController)
}
