// Package catalog holds the fixed seat topology: buildings, their rooms and
// each room's grid. It has no state and no failure modes.
package catalog

import (
	"strconv"

	"library-seats/internal/data/entity"
)

type Building struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Room struct {
	ID           string `json:"id"`
	BuildingID   string `json:"building_id"`
	BuildingName string `json:"building_name"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
}

func (r Room) Capacity() int {
	return r.Rows * r.Cols
}

var buildings = []Building{
	{ID: "main", Name: "본관"},
	{ID: "annex", Name: "별관"},
}

var rooms = []Room{
	{ID: "main-reading", BuildingID: "main", BuildingName: "본관", Name: "본관 열람실", Rows: 3, Cols: 4},
	{ID: "main-study", BuildingID: "main", BuildingName: "본관", Name: "본관 스터디룸", Rows: 2, Cols: 3},
	{ID: "annex-1-reading", BuildingID: "annex", BuildingName: "별관", Name: "별관 1층 열람실", Rows: 3, Cols: 5},
	{ID: "annex-1-laptop", BuildingID: "annex", BuildingName: "별관", Name: "별관 1층 노트북열람실", Rows: 2, Cols: 4},
	{ID: "annex-2-reading", BuildingID: "annex", BuildingName: "별관", Name: "별관 2층 열람실", Rows: 3, Cols: 4},
	{ID: "annex-2-laptop", BuildingID: "annex", BuildingName: "별관", Name: "별관 2층 노트북열람실", Rows: 2, Cols: 4},
}

// Buildings returns the closed set of buildings in display order.
func Buildings() []Building {
	out := make([]Building, len(buildings))
	copy(out, buildings)
	return out
}

func HasBuilding(id string) bool {
	for _, b := range buildings {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Rooms returns every room, or only those of buildingID when it is set.
func Rooms(buildingID string) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if buildingID == "" || r.BuildingID == buildingID {
			out = append(out, r)
		}
	}
	return out
}

func RoomByID(id string) (Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// SeatLabel builds "A1" style labels from a zero-based row and column.
func SeatLabel(row, col int) string {
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}

// ParseLabel is the inverse of SeatLabel.
func ParseLabel(label string) (row, col int, ok bool) {
	if len(label) < 2 || label[0] < 'A' || label[0] > 'Z' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return int(label[0] - 'A'), n - 1, true
}

func SeatID(roomID, label string) string {
	return roomID + "-" + label
}

// Seed expands every room into its full grid of free seats.
func Seed() *entity.Aggregate {
	total := 0
	for _, room := range rooms {
		total += room.Capacity()
	}

	seats := make([]entity.Seat, 0, total)
	for _, room := range rooms {
		for r := 0; r < room.Rows; r++ {
			for c := 0; c < room.Cols; c++ {
				label := SeatLabel(r, c)
				seats = append(seats, entity.Seat{
					ID:           SeatID(room.ID, label),
					BuildingID:   room.BuildingID,
					BuildingName: room.BuildingName,
					RoomID:       room.ID,
					RoomName:     room.Name,
					Label:        label,
				})
			}
		}
	}

	return &entity.Aggregate{
		Seats:        seats,
		Reservations: []entity.Reservation{},
	}
}
