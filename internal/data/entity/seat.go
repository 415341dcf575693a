package entity

import "time"

type Seat struct {
	ID           string     `json:"id"`
	BuildingID   string     `json:"buildingId"`
	BuildingName string     `json:"buildingName"`
	RoomID       string     `json:"roomId"`
	RoomName     string     `json:"roomName"`
	Label        string     `json:"label"`      // A1, A2, B1, etc.
	ReservedBy   *string    `json:"reservedBy"` // email of the holder, nil when free
	ReservedAt   *time.Time `json:"reservedAt"`
}

func (s *Seat) IsReserved() bool {
	return s.ReservedBy != nil
}
