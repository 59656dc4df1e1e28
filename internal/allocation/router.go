package allocation

import (
	"github.com/gin-gonic/gin"
)

func SetupAllocationRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PER-LEG SEAT MAP

	legs := rg.Group("/legs/:legId")
	{
		legs.GET("/seatmap", controller.GetSeatMap)       // GET /api/v1/legs/:legId/seatmap
		legs.GET("/passengers", controller.GetPassengers) // GET /api/v1/legs/:legId/passengers
		legs.POST("/reset", controller.ResetToFile)       // POST /api/v1/legs/:legId/reset
		legs.POST("/clear", controller.ClearAll)          // POST /api/v1/legs/:legId/clear

		// Per-passenger transitions
		pax := legs.Group("/passengers/:paxId")
		{
			pax.POST("/seat", controller.BookSeat)                    // POST /api/v1/legs/:legId/passengers/:paxId/seat
			pax.DELETE("/seat", controller.CancelSeat)                // DELETE /api/v1/legs/:legId/passengers/:paxId/seat
			pax.POST("/privacy", controller.TogglePrivacy)            // POST /api/v1/legs/:legId/passengers/:paxId/privacy
			pax.DELETE("/privacy", controller.ClearPrivacy)           // DELETE /api/v1/legs/:legId/passengers/:paxId/privacy
			pax.GET("/privacy/options", controller.GetPrivacyOptions) // GET /api/v1/legs/:legId/passengers/:paxId/privacy/options
			pax.GET("/seats/:seatId/quote", controller.QuoteSeat)     // GET /api/v1/legs/:legId/passengers/:paxId/seats/:seatId/quote
		}
	}

	// CROSS-LEG OPERATIONS

	passengers := rg.Group("/passengers")
	{
		passengers.DELETE("/:paxId/assignments", controller.ClearPassengerAllLegs) // DELETE /api/v1/passengers/:paxId/assignments
	}
}
