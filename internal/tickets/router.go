package tickets

import (
	"wisata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTicketRoutes configures all ticket-related routes
func SetupTicketRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public pricing and catalog routes
	public := rg.Group("/destinations/:destinationId/tickets")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("", controller.GetCatalog)
		public.GET("/quote", controller.QuotePrice)
	}

	// Admin ticket management
	admin := rg.Group("/admin/tickets")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateTicket)
		admin.GET("/:ticketId", controller.GetTicket)
		admin.PUT("/:ticketId", controller.UpdateTicket)
		admin.DELETE("/:ticketId", controller.DeleteTicket)
	}
}
