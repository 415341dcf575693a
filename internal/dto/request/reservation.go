package request

type ReserveSeatRequest struct {
	SeatID string `json:"seat_id" validate:"required,max=64"`
}
