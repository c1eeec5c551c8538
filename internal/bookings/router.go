package bookings

import (
	"wisata/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes.
// sessionTTLSeconds controls the booking session cookie lifetime.
func SetupBookingRoutes(rg *gin.RouterGroup, controller Controller, sessionTTLSeconds int, secureCookies bool) {
	// Customer booking flow, keyed by a session cookie
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.BookingSession(sessionTTLSeconds, secureCookies))
	{
		bookings.PUT("/draft", controller.StoreDraft)
		bookings.GET("/draft", controller.GetDraft)
		bookings.POST("/confirm", controller.ConfirmBooking)
		bookings.GET("/code/:code", controller.GetBookingByCode)
		bookings.GET("/:bookingId", controller.GetBooking)
	}

	// Admin settlement and oversight
	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListBookings)
		admin.GET("/:bookingId", controller.GetBooking)
		admin.PATCH("/:bookingId/payment", controller.SettlePayment)
	}
}
