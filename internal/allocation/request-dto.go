package allocation

// SeatRequest carries the seat a passenger wants to act on. The seat id
// accepts either coordinate order ("10A" or "A10").
type SeatRequest struct {
	SeatID string `json:"seat_id" binding:"required,min=2,max=5"`
}
