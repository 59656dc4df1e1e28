package allocation

import (
	"errors"
	"net/http"

	"seatly/internal/shared/utils/response"
	"seatly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	engine *Engine
}

func NewController(engine *Engine) *Controller {
	return &Controller{engine: engine}
}

// statusFor maps engine errors onto HTTP codes. Recoverable conflicts are
// 409 so a client can refresh and retry; bad references fail closed as 404.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPrivacySeatTaken), errors.Is(err, ErrSeatConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidReference), errors.Is(err, ErrStateNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

//  READS

func (c *Controller) GetSeatMap(ctx *gin.Context) {
	legID := ctx.Param("legId")
	if legID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID is required", nil, "missing leg ID")
		return
	}

	snap, err := c.engine.Snapshot(legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", snap, nil)
}

func (c *Controller) GetPassengers(ctx *gin.Context) {
	legID := ctx.Param("legId")
	if legID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID is required", nil, "missing leg ID")
		return
	}

	passengers, err := c.engine.Passengers(legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get passengers", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Passengers retrieved successfully", passengers, nil)
}

func (c *Controller) GetPrivacyOptions(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	if legID == "" || paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID and passenger ID are required", nil, "missing path parameters")
		return
	}

	seats, err := c.engine.EligiblePrivacySeats(legID, paxID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get privacy options", nil, err.Error())
		return
	}

	snap, err := c.engine.Snapshot(legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to get privacy options", nil, err.Error())
		return
	}

	resp := PrivacyOptionsResponse{
		PassengerID:   paxID,
		CurrentSeatID: snap.Assignments[paxID],
		EligibleSeats: seats,
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Privacy options retrieved successfully", resp, nil)
}

func (c *Controller) QuoteSeat(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	seatID := ctx.Param("seatId")
	if legID == "" || paxID == "" || seatID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID, passenger ID and seat ID are required", nil, "missing path parameters")
		return
	}

	quote, err := c.engine.QuoteSeat(legID, paxID, seatID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to quote seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat quoted successfully", quote, nil)
}

//  TRANSITIONS

func (c *Controller) BookSeat(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	if legID == "" || paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID and passenger ID are required", nil, "missing path parameters")
		return
	}

	var req SeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	snap, refunds, err := c.engine.Book(ctx.Request.Context(), legID, paxID, req.SeatID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to book seat", nil, err.Error())
		return
	}

	logger.GetDefault().LogSeatBooked(ctx.Request.Context(), legID, paxID, req.SeatID, len(refunds))

	resp := BookResponse{SeatMap: snap, Refunds: refunds}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat booked successfully", resp, nil)
}

func (c *Controller) CancelSeat(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	if legID == "" || paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID and passenger ID are required", nil, "missing path parameters")
		return
	}

	snap, err := c.engine.Cancel(ctx.Request.Context(), legID, paxID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to cancel seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat cancelled successfully", snap, nil)
}

func (c *Controller) TogglePrivacy(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	if legID == "" || paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID and passenger ID are required", nil, "missing path parameters")
		return
	}

	var req SeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	snap, err := c.engine.TogglePrivacy(ctx.Request.Context(), legID, paxID, req.SeatID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to toggle privacy seat", nil, err.Error())
		return
	}

	logger.GetDefault().LogPrivacyToggled(ctx.Request.Context(), legID, paxID, req.SeatID)

	response.RespondJSON(ctx, "success", http.StatusOK, "Privacy seat toggled successfully", snap, nil)
}

func (c *Controller) ClearPrivacy(ctx *gin.Context) {
	legID := ctx.Param("legId")
	paxID := ctx.Param("paxId")
	if legID == "" || paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID and passenger ID are required", nil, "missing path parameters")
		return
	}

	snap, err := c.engine.ClearPrivacy(ctx.Request.Context(), legID, paxID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to clear privacy seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Privacy seats cleared successfully", snap, nil)
}

func (c *Controller) ResetToFile(ctx *gin.Context) {
	legID := ctx.Param("legId")
	if legID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID is required", nil, "missing leg ID")
		return
	}

	snap, err := c.engine.ResetToFile(ctx.Request.Context(), legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to reset seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map reset to filed seats", snap, nil)
}

func (c *Controller) ClearAll(ctx *gin.Context) {
	legID := ctx.Param("legId")
	if legID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Leg ID is required", nil, "missing leg ID")
		return
	}

	snap, err := c.engine.ClearAll(ctx.Request.Context(), legID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to clear seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map cleared successfully", snap, nil)
}

func (c *Controller) ClearPassengerAllLegs(ctx *gin.Context) {
	paxID := ctx.Param("paxId")
	if paxID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Passenger ID is required", nil, "missing passenger ID")
		return
	}

	cleared, err := c.engine.ClearPassengerAllLegs(ctx.Request.Context(), paxID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFor(err), "Failed to clear passenger legs", nil, err.Error())
		return
	}

	resp := ClearAllLegsResponse{PassengerID: paxID, LegsCleared: cleared}
	response.RespondJSON(ctx, "success", http.StatusOK, "Passenger cleared on all legs", resp, nil)
}
