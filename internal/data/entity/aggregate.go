package entity

import (
	"fmt"
	"slices"
	"time"
)

// Reason explains why a reservation operation was rejected.
type Reason string

const (
	ReasonNotFound         Reason = "not-found"
	ReasonOccupied         Reason = "occupied"
	ReasonForbidden        Reason = "forbidden"
	ReasonAlreadyCancelled Reason = "already-cancelled"
)

// Aggregate is the unit of persistence. Seats and the whole reservation
// history are always loaded and saved together.
type Aggregate struct {
	Seats        []Seat        `json:"seats"`
	Reservations []Reservation `json:"reservations"`
}

func (a *Aggregate) SeatByID(id string) *Seat {
	for i := range a.Seats {
		if a.Seats[i].ID == id {
			return &a.Seats[i]
		}
	}
	return nil
}

func (a *Aggregate) ReservationByID(id string) *Reservation {
	for i := range a.Reservations {
		if a.Reservations[i].ID == id {
			return &a.Reservations[i]
		}
	}
	return nil
}

// Reserve hands the seat to user and appends an active reservation.
// When a reason is returned the aggregate has not been touched.
func (a *Aggregate) Reserve(seatID string, user Identity, reservationID string, now time.Time) (Reservation, Seat, Reason) {
	seat := a.SeatByID(seatID)
	if seat == nil {
		return Reservation{}, Seat{}, ReasonNotFound
	}
	if seat.IsReserved() {
		return Reservation{}, Seat{}, ReasonOccupied
	}

	email := user.Email
	reservedAt := now
	seat.ReservedBy = &email
	seat.ReservedAt = &reservedAt

	name := user.Name
	if name == "" {
		name = user.Email
	}

	reservation := Reservation{
		ID:           reservationID,
		SeatID:       seat.ID,
		SeatLabel:    seat.Label,
		BuildingID:   seat.BuildingID,
		BuildingName: seat.BuildingName,
		RoomID:       seat.RoomID,
		RoomName:     seat.RoomName,
		UserEmail:    user.Email,
		UserName:     name,
		ReservedAt:   now,
		Status:       ReservationStatusActive,
	}
	a.Reservations = append(a.Reservations, reservation)

	return reservation, *seat, ""
}

// Cancel releases the seat held by the reservation. Only the owner may
// cancel, and only once.
func (a *Aggregate) Cancel(reservationID, requesterEmail string, now time.Time) (Reservation, Reason) {
	reservation := a.ReservationByID(reservationID)
	if reservation == nil {
		return Reservation{}, ReasonNotFound
	}
	if reservation.UserEmail != requesterEmail {
		return Reservation{}, ReasonForbidden
	}
	if reservation.Status == ReservationStatusCancelled {
		return Reservation{}, ReasonAlreadyCancelled
	}

	// the seat may be gone if the catalog shrank since the reservation was made
	if seat := a.SeatByID(reservation.SeatID); seat != nil {
		seat.ReservedBy = nil
		seat.ReservedAt = nil
	}

	cancelledAt := now
	reservation.Status = ReservationStatusCancelled
	reservation.CancelledAt = &cancelledAt

	return *reservation, ""
}

// ReservationsOf returns the user's reservations, newest first. Equal
// timestamps keep their insertion order.
func (a *Aggregate) ReservationsOf(email string) []Reservation {
	out := make([]Reservation, 0)
	for _, r := range a.Reservations {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(x, y Reservation) int {
		return y.ReservedAt.Compare(x.ReservedAt)
	})

	return out
}

// CheckConsistency verifies that a seat is held iff exactly one active
// reservation points at it, and that the holder matches.
func (a *Aggregate) CheckConsistency() error {
	active := make(map[string]*Reservation)
	for i := range a.Reservations {
		r := &a.Reservations[i]
		if !r.IsActive() {
			continue
		}
		if prev, dup := active[r.SeatID]; dup {
			return fmt.Errorf("seat %s has two active reservations: %s, %s", r.SeatID, prev.ID, r.ID)
		}
		active[r.SeatID] = r
	}

	for i := range a.Seats {
		seat := &a.Seats[i]
		r, held := active[seat.ID]
		switch {
		case seat.IsReserved() && !held:
			return fmt.Errorf("seat %s is reserved without an active reservation", seat.ID)
		case !seat.IsReserved() && held:
			return fmt.Errorf("seat %s is free but reservation %s is active", seat.ID, r.ID)
		case held && *seat.ReservedBy != r.UserEmail:
			return fmt.Errorf("seat %s is held by %s but reservation %s belongs to %s",
				seat.ID, *seat.ReservedBy, r.ID, r.UserEmail)
		}
	}

	return nil
}
