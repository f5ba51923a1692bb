package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wellnest/server/internal/container"
	"github.com/wellnest/server/internal/handlers"
	"github.com/wellnest/server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "wellnest-api",
			})
		})

		// public routes: postal lookup stub and onboarding glue
		v1.GET("/postal/:code", handlers.LookupPostal())
		v1.POST("/companies", handlers.CreateCompany(container.DirectoryService))
		v1.GET("/companies/:id", handlers.GetCompany(container.DirectoryService))
		v1.POST("/vendors", handlers.CreateVendor(container.DirectoryService))
		v1.GET("/vendors/:id", handlers.GetVendor(container.DirectoryService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventsService))
		eventRoutes.GET("/", handlers.ListEvents(container.EventsService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventsService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(container.EventsService))
		eventRoutes.PATCH("/:id/approve", handlers.ApproveEvent(container.EventsService))
		eventRoutes.PATCH("/:id/reject", handlers.RejectEvent(container.EventsService))
	}

	eventItemRoutes := protected.Group("/event-items")
	{
		eventItemRoutes.POST("/", handlers.CreateEventItem(container.EventItemsService))
		eventItemRoutes.GET("/", handlers.ListEventItems(container.EventItemsService))
		eventItemRoutes.GET("/:id/events", handlers.ListEventsForEventItem(container.EventsService))
	}

	return r
}
