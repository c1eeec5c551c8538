package destinations

import (
	"wisata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDestinationRoutes configures all destination-related routes
func SetupDestinationRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public catalog routes
	destinations := rg.Group("/destinations")
	destinations.Use(middleware.OptionalAuth())
	{
		destinations.GET("", controller.GetAllDestinations)
		destinations.GET("/:destinationId", controller.GetDestination)
		destinations.GET("/slug/:slug", controller.GetDestinationBySlug)
	}

	// Admin catalog management
	admin := rg.Group("/admin/destinations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateDestination)
		admin.PUT("/:destinationId", controller.UpdateDestination)
		admin.DELETE("/:destinationId", controller.DeleteDestination)
	}
}
