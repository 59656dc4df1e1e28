package bookings

import (
	"errors"
	"net/http"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ImportBooking(ctx *gin.Context) {
	var req ImportBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.ImportBooking(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrDuplicateConfirmation) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to import booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking imported successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	confirmation := ctx.Param("confirmation")
	if confirmation == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Confirmation number is required", nil, "missing confirmation number")
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), confirmation)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) ListBookings(ctx *gin.Context) {
	confirmations, err := c.service.ListConfirmations(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings listed successfully", confirmations, nil)
}

func (c *Controller) DeleteBooking(ctx *gin.Context) {
	confirmation := ctx.Param("confirmation")
	if confirmation == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Confirmation number is required", nil, "missing confirmation number")
		return
	}

	if err := c.service.DeleteBooking(ctx.Request.Context(), confirmation); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking deleted successfully", nil, nil)
}
