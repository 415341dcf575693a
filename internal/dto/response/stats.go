package response

import "library-seats/internal/catalog"

type Occupancy struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type RoomSummary struct {
	Current  int    `json:"current"`
	Max      int    `json:"max"`
	RoomName string `json:"room_name"`
}

type BuildingSummary struct {
	Current int                     `json:"current"`
	Max     int                     `json:"max"`
	Rooms   map[string]*RoomSummary `json:"rooms"`
}

// Summary is keyed by building id.
type Summary map[string]*BuildingSummary

type RoomView struct {
	catalog.Room
	Seats   []SeatResponse `json:"seats"`
	Summary Occupancy      `json:"summary"`
}

// SeatMapView lays a room's seats out as Grid[row][col]. A cell is nil when
// no stored seat carries that label.
type SeatMapView struct {
	catalog.Room
	Grid  [][]*SeatResponse `json:"grid"`
	Seats []SeatResponse    `json:"seats"`
}

type FrequentRoom struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	Count    int    `json:"count"`
}

type Dashboard struct {
	UserEmail           string                `json:"user_email"`
	TotalReservations   int                   `json:"total_reservations"`
	ActiveReservation   *ReservationResponse  `json:"active_reservation"`
	RecentCancelled     []ReservationResponse `json:"recent_cancelled"`
	FrequentRoom        *FrequentRoom         `json:"frequent_room"`
	UpcomingReservation *ReservationResponse  `json:"upcoming_reservation"`
	SeatStats           Summary               `json:"seat_stats"`
}

type UserStats struct {
	Total            int     `json:"total"`
	Active           int     `json:"active"`
	Cancelled        int     `json:"cancelled"`
	CancellationRate float64 `json:"cancellation_rate"`
}
