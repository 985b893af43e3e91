package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"rideshare/internal/handler"
	"rideshare/internal/logger"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	FareHandler      *handler.FareHandler
	DriverHandler    *handler.DriverHandler
	AdminHandler     *handler.AdminHandler
	RideHandler      *handler.RideHandler
	IdempotencyStore middleware.ResponseStore
	JWTSecret        []byte
	AllowOrigins     []string
	NewRelicApp      *newrelic.Application
	Logger           logger.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowOrigins))

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	auth := middleware.Auth(deps.JWTSecret)
	idempotent := func(c *gin.Context) { c.Next() }
	if deps.IdempotencyStore != nil {
		idempotent = middleware.IdempotencyMiddleware(deps.IdempotencyStore, deps.Logger)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Fare routes.
		fares := v1.Group("/fares")
		{
			fares.POST("/quote", deps.FareHandler.Quote)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.GET("/:id/rides", deps.RideHandler.ListDriverRides)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.GET("", deps.RideHandler.SearchRides)
			rides.GET("/:id", deps.RideHandler.GetRide)

			driverOnly := rides.Group("", auth, middleware.RequireRole(middleware.RoleDriver), idempotent)
			driverOnly.POST("", deps.RideHandler.PostRide)
			driverOnly.POST("/:id/cancel", deps.RideHandler.CancelRide)
			driverOnly.POST("/:id/complete", deps.RideHandler.CompleteRide)
		}

		// Admin routes.
		admin := v1.Group("/admin", auth, middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/drivers", deps.AdminHandler.ListDrivers)
			admin.GET("/drivers/pending", deps.AdminHandler.PendingDrivers)
			admin.GET("/drivers/stats", deps.AdminHandler.Stats)
			admin.PUT("/drivers/:id/verify", idempotent, deps.AdminHandler.VerifyDriver)
			admin.PUT("/drivers/:id/reject", idempotent, deps.AdminHandler.RejectDriver)
		}
	}

	return router
}
