package bookings

import (
	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.ImportBooking)                 // POST /api/v1/bookings
		bookings.GET("", controller.ListBookings)                   // GET /api/v1/bookings
		bookings.GET("/:confirmation", controller.GetBooking)       // GET /api/v1/bookings/:confirmation
		bookings.DELETE("/:confirmation", controller.DeleteBooking) // DELETE /api/v1/bookings/:confirmation
	}
}
