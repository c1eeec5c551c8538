package documents

import (
	"github.com/gin-gonic/gin"
)

// SetupDocumentRoutes configures booking document download routes
func SetupDocumentRoutes(rg *gin.RouterGroup, controller Controller) {
	docs := rg.Group("/bookings/:bookingId")
	{
		docs.GET("/eticket", controller.DownloadETicket)
		docs.GET("/invoice", controller.DownloadInvoice)
	}
}
