package bookings

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures booking management routes. The booking
// entrypoint itself (POST /shows/:id/book) is mounted by the shows
// router via the controller's BookSeat handler.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
		bookings.GET("/my", controller.MyBookings)             // GET /api/v1/bookings/my
	}
}
