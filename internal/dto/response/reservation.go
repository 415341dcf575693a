package response

import (
	"time"

	"library-seats/internal/data/entity"
)

type SeatResponse struct {
	ID           string     `json:"id"`
	BuildingID   string     `json:"building_id"`
	BuildingName string     `json:"building_name"`
	RoomID       string     `json:"room_id"`
	RoomName     string     `json:"room_name"`
	Label        string     `json:"label"`
	ReservedBy   *string    `json:"reserved_by"`
	ReservedAt   *time.Time `json:"reserved_at"`
}

type ReservationResponse struct {
	ID           string                   `json:"id"`
	SeatID       string                   `json:"seat_id"`
	SeatLabel    string                   `json:"seat_label"`
	BuildingID   string                   `json:"building_id"`
	BuildingName string                   `json:"building_name"`
	RoomID       string                   `json:"room_id"`
	RoomName     string                   `json:"room_name"`
	UserEmail    string                   `json:"user_email"`
	UserName     string                   `json:"user_name"`
	ReservedAt   time.Time                `json:"reserved_at"`
	CancelledAt  *time.Time               `json:"cancelled_at"`
	Status       entity.ReservationStatus `json:"status"`
}

// ReserveResult reports a rejected reservation through Reason rather than
// an error; OK is false whenever Reason is set.
type ReserveResult struct {
	OK          bool                 `json:"ok"`
	Reason      entity.Reason        `json:"reason,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	Seat        *SeatResponse        `json:"seat,omitempty"`
}

type CancelResult struct {
	OK          bool                 `json:"ok"`
	Reason      entity.Reason        `json:"reason,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// Helper converters
func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:           seat.ID,
		BuildingID:   seat.BuildingID,
		BuildingName: seat.BuildingName,
		RoomID:       seat.RoomID,
		RoomName:     seat.RoomName,
		Label:        seat.Label,
		ReservedBy:   seat.ReservedBy,
		ReservedAt:   seat.ReservedAt,
	}
}

func SeatsToResponse(seats []entity.Seat) []SeatResponse {
	out := make([]SeatResponse, len(seats))
	for i := range seats {
		out[i] = SeatToResponse(&seats[i])
	}
	return out
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		SeatID:       r.SeatID,
		SeatLabel:    r.SeatLabel,
		BuildingID:   r.BuildingID,
		BuildingName: r.BuildingName,
		RoomID:       r.RoomID,
		RoomName:     r.RoomName,
		UserEmail:    r.UserEmail,
		UserName:     r.UserName,
		ReservedAt:   r.ReservedAt,
		CancelledAt:  r.CancelledAt,
		Status:       r.Status,
	}
}

func ReservationsToResponse(rs []entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(rs))
	for i := range rs {
		out[i] = ReservationToResponse(&rs[i])
	}
	return out
}
