package fares

import (
	"errors"
	"net/http"

	"seatly/internal/allocation"
	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func statusFor(err error) int {
	if errors.Is(err, allocation.ErrInvalidReference) || errors.Is(err, allocation.ErrStateNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (c *Controller) GetLegFares(ctx *gin.Context) {
	legID := ctx.Param("legId")
	if legID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID is required", nil, "missing leg ID")
		return
	}

	leg, err := c.service.LegFares(legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get leg fares", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Leg fares retrieved successfully", leg, nil)
}

func (c *Controller) GetBookingFares(ctx *gin.Context) {
	confirmation := ctx.Param("confirmation")
	if confirmation == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Confirmation number is required", nil, "missing confirmation number")
		return
	}

	booking, err := c.service.BookingFares(confirmation)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get booking fares", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking fares retrieved successfully", booking, nil)
}

// GetCartText serves the share/email summary as plain text rather than
// the JSON envelope.
func (c *Controller) GetCartText(ctx *gin.Context) {
	confirmation := ctx.Param("confirmation")
	if confirmation == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Confirmation number is required", nil, "missing confirmation number")
		return
	}

	text, err := c.service.CartText(confirmation)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to export cart", nil, err.Error())
		return
	}

	ctx.String(http.StatusOK, text)
}
