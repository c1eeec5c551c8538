package complaints

import (
	"wisata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupComplaintRoutes configures all complaint-related routes
func SetupComplaintRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public submission
	complaints := rg.Group("/complaints")
	{
		complaints.POST("", controller.CreateComplaint)
	}

	// Admin handling
	admin := rg.Group("/admin/complaints")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListComplaints)
		admin.GET("/:complaintId", controller.GetComplaint)
		admin.PATCH("/:complaintId/resolve", controller.ResolveComplaint)
		admin.DELETE("/:complaintId", controller.DeleteComplaint)
	}
}
