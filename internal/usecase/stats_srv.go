package usecase

import (
	"context"
	"fmt"
	"math"

	"library-seats/internal/catalog"
	"library-seats/internal/data/entity"
	"library-seats/internal/dto/response"

	"go.uber.org/zap"
)

// StatsService derives read-only views from the reservation engine. It never
// writes.
type StatsService interface {
	Summary(ctx context.Context) (response.Summary, error)
	ListRooms(ctx context.Context, buildingID string) ([]response.RoomView, error)
	ListSeatMap(ctx context.Context, buildingID string) ([]response.SeatMapView, error)
	GetUserDashboard(ctx context.Context, userEmail string) (*response.Dashboard, error)
	GetUserStats(ctx context.Context, userEmail string) (*response.UserStats, error)
}

type statsService struct {
	reservations ReservationService
	log          *zap.Logger
}

func NewStatsService(reservations ReservationService, log *zap.Logger) StatsService {
	return &statsService{
		reservations: reservations,
		log:          log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) Summary(ctx context.Context) (response.Summary, error) {
	agg, err := s.reservations.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return s.summarize(agg.Seats), nil
}

func (s *statsService) summarize(seats []entity.Seat) response.Summary {
	summary := make(response.Summary)
	for _, b := range catalog.Buildings() {
		summary[b.ID] = &response.BuildingSummary{Rooms: map[string]*response.RoomSummary{}}
	}

	for i := range seats {
		seat := &seats[i]
		bucket, ok := summary[seat.BuildingID]
		if !ok {
			s.log.Debug("Seat outside known buildings skipped",
				zap.String("seat_id", seat.ID),
				zap.String("building_id", seat.BuildingID),
			)
			continue
		}

		room, ok := bucket.Rooms[seat.RoomID]
		if !ok {
			room = &response.RoomSummary{RoomName: seat.RoomName}
			bucket.Rooms[seat.RoomID] = room
		}

		bucket.Max++
		room.Max++
		if seat.IsReserved() {
			bucket.Current++
			room.Current++
		}
	}

	return summary
}

func (s *statsService) ListRooms(ctx context.Context, buildingID string) ([]response.RoomView, error) {
	rooms, byRoom, err := s.roomsWithSeats(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	views := make([]response.RoomView, len(rooms))
	for i, room := range rooms {
		seats := byRoom[room.ID]
		occ := response.Occupancy{Max: len(seats)}
		for j := range seats {
			if seats[j].IsReserved() {
				occ.Current++
			}
		}

		views[i] = response.RoomView{
			Room:    room,
			Seats:   response.SeatsToResponse(seats),
			Summary: occ,
		}
	}

	return views, nil
}

func (s *statsService) ListSeatMap(ctx context.Context, buildingID string) ([]response.SeatMapView, error) {
	rooms, byRoom, err := s.roomsWithSeats(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	views := make([]response.SeatMapView, len(rooms))
	for i, room := range rooms {
		seats := response.SeatsToResponse(byRoom[room.ID])

		grid := make([][]*response.SeatResponse, room.Rows)
		for r := range grid {
			grid[r] = make([]*response.SeatResponse, room.Cols)
		}
		for j := range seats {
			row, col, ok := catalog.ParseLabel(seats[j].Label)
			if !ok || row >= room.Rows || col >= room.Cols {
				continue
			}
			grid[row][col] = &seats[j]
		}

		views[i] = response.SeatMapView{Room: room, Grid: grid, Seats: seats}
	}

	return views, nil
}

func (s *statsService) GetUserDashboard(ctx context.Context, userEmail string) (*response.Dashboard, error) {
	// one snapshot, so the seat stats and the user's reservations agree
	agg, err := s.reservations.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	reservations := agg.ReservationsOf(userEmail)
	summary := s.summarize(agg.Seats)

	dashboard := &response.Dashboard{
		UserEmail:         userEmail,
		TotalReservations: len(reservations),
		RecentCancelled:   []response.ReservationResponse{},
		FrequentRoom:      frequentRoom(reservations),
		SeatStats:         summary,
	}

	// reservations are newest first, so the first hit is the most recent
	for i := range reservations {
		r := &reservations[i]
		switch r.Status {
		case entity.ReservationStatusActive:
			if dashboard.ActiveReservation == nil {
				active := response.ReservationToResponse(r)
				dashboard.ActiveReservation = &active
			}
		case entity.ReservationStatusCancelled:
			if len(dashboard.RecentCancelled) < 3 {
				dashboard.RecentCancelled = append(dashboard.RecentCancelled, response.ReservationToResponse(r))
			}
		}
	}
	dashboard.UpcomingReservation = dashboard.ActiveReservation

	return dashboard, nil
}

func (s *statsService) GetUserStats(ctx context.Context, userEmail string) (*response.UserStats, error) {
	agg, err := s.reservations.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	reservations := agg.ReservationsOf(userEmail)

	stats := &response.UserStats{Total: len(reservations)}
	for i := range reservations {
		switch reservations[i].Status {
		case entity.ReservationStatusActive:
			stats.Active++
		case entity.ReservationStatusCancelled:
			stats.Cancelled++
		}
	}

	if stats.Total > 0 {
		rate := float64(stats.Cancelled) / float64(stats.Total) * 100
		stats.CancellationRate = math.Round(rate*10) / 10
	}

	return stats, nil
}

// roomsWithSeats returns the catalog rooms (optionally one building's) and
// the live seats grouped by room id.
func (s *statsService) roomsWithSeats(ctx context.Context, buildingID string) ([]catalog.Room, map[string][]entity.Seat, error) {
	if buildingID != "" && !catalog.HasBuilding(buildingID) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBuilding, buildingID)
	}

	agg, err := s.reservations.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}

	byRoom := make(map[string][]entity.Seat)
	for _, seat := range agg.Seats {
		byRoom[seat.RoomID] = append(byRoom[seat.RoomID], seat)
	}

	return catalog.Rooms(buildingID), byRoom, nil
}

// frequentRoom picks the room the user reserved most often. Ties go to the
// lexicographically smallest room id.
func frequentRoom(reservations []entity.Reservation) *response.FrequentRoom {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, r := range reservations {
		counts[r.RoomID]++
		if _, ok := names[r.RoomID]; !ok {
			names[r.RoomID] = r.RoomName
		}
	}

	var best *response.FrequentRoom
	for roomID, count := range counts {
		if best != nil && (count < best.Count || (count == best.Count && roomID > best.RoomID)) {
			continue
		}
		best = &response.FrequentRoom{RoomID: roomID, Count: count}
	}
	if best == nil {
		return nil
	}

	if room, ok := catalog.RoomByID(best.RoomID); ok {
		best.RoomName = room.Name
	} else {
		best.RoomName = names[best.RoomID]
	}

	return best
}
