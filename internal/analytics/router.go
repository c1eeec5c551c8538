package analytics

import (
	"wisata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes configures admin analytics routes
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller) {
	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetDashboard)
		admin.GET("/overview", controller.GetOverview)
		admin.GET("/bookings/daily", controller.GetDailyBookings)
		admin.GET("/income/monthly", controller.GetMonthlyIncome)
		admin.GET("/destinations/top", controller.GetTopDestinations)
	}
}
