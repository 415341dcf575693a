package entity

import "time"

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation keeps a snapshot of the seat, room and building labels taken
// when it was created. Records are never deleted.
type Reservation struct {
	ID           string            `json:"id"`
	SeatID       string            `json:"seatId"`
	SeatLabel    string            `json:"seatLabel"`
	BuildingID   string            `json:"buildingId"`
	BuildingName string            `json:"buildingName"`
	RoomID       string            `json:"roomId"`
	RoomName     string            `json:"roomName"`
	UserEmail    string            `json:"userEmail"`
	UserName     string            `json:"userName"`
	ReservedAt   time.Time         `json:"reservedAt"`
	CancelledAt  *time.Time        `json:"cancelledAt"`
	Status       ReservationStatus `json:"status"`
}

func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}
