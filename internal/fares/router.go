package fares

import (
	"github.com/gin-gonic/gin"
)

func SetupFareRoutes(rg *gin.RouterGroup, controller *Controller) {

	legs := rg.Group("/legs")
	{
		legs.GET("/:legId/fares", controller.GetLegFares) // GET /api/v1/legs/:legId/fares
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("/:confirmation/fares", controller.GetBookingFares) // GET /api/v1/bookings/:confirmation/fares
		bookings.GET("/:confirmation/cart", controller.GetCartText)      // GET /api/v1/bookings/:confirmation/cart
	}
}
