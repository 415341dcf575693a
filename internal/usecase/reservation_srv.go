package usecase

import (
	"context"
	"fmt"
	"sync"

	"library-seats/internal/clock"
	"library-seats/internal/data/entity"
	"library-seats/internal/data/repository"
	"library-seats/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService is the reservation engine. Every call loads the whole
// aggregate, and writes save the whole aggregate back.
//
// Every call inside one process is serialized, reads included: a read of a
// missing or corrupt record reseeds and saves. Two processes sharing a
// backend can still overwrite each other's last write.
type ReservationService interface {
	ReserveSeat(ctx context.Context, seatID string, user entity.Identity) (*response.ReserveResult, error)
	CancelReservation(ctx context.Context, reservationID, requesterEmail string) (*response.CancelResult, error)
	ListUserReservations(ctx context.Context, userEmail string) ([]entity.Reservation, error)
	GetSeatByID(ctx context.Context, seatID string) (*entity.Seat, error)
	// Snapshot returns one consistent copy of the whole aggregate.
	Snapshot(ctx context.Context) (*entity.Aggregate, error)
}

type reservationService struct {
	mu    sync.Mutex
	state repository.StateRepository
	clock clock.Clock
	newID func() string
	log   *zap.Logger
}

func NewReservationService(state repository.StateRepository, clk clock.Clock, log *zap.Logger) ReservationService {
	return &reservationService{
		state: state,
		clock: clk,
		newID: newReservationID,
		log:   log.With(zap.String("service", "reservation")),
	}
}

// newReservationID is random so that a cancel and re-reserve of the same
// seat within one clock tick cannot collide.
func newReservationID() string {
	return "res-" + uuid.NewString()
}

func (s *reservationService) ReserveSeat(ctx context.Context, seatID string, user entity.Identity) (*response.ReserveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve seat %s: %w", seatID, err)
	}

	reservation, seat, reason := agg.Reserve(seatID, user, s.newID(), s.clock.Now())
	if reason != "" {
		s.log.Info("Reservation rejected",
			zap.String("seat_id", seatID),
			zap.String("user_email", user.Email),
			zap.String("reason", string(reason)),
		)
		return &response.ReserveResult{OK: false, Reason: reason}, nil
	}

	if err := s.state.Save(ctx, agg); err != nil {
		s.log.Error("Failed to save reservation",
			zap.Error(err),
			zap.String("seat_id", seatID),
			zap.String("user_email", user.Email),
		)
		return nil, fmt.Errorf("reserve seat %s: %w", seatID, err)
	}

	s.log.Info("Seat reserved",
		zap.String("reservation_id", reservation.ID),
		zap.String("seat_id", seat.ID),
		zap.String("user_email", user.Email),
	)

	resResp := response.ReservationToResponse(&reservation)
	seatResp := response.SeatToResponse(&seat)
	return &response.ReserveResult{OK: true, Reservation: &resResp, Seat: &seatResp}, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, reservationID, requesterEmail string) (*response.CancelResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	reservation, reason := agg.Cancel(reservationID, requesterEmail, s.clock.Now())
	if reason != "" {
		s.log.Info("Cancellation rejected",
			zap.String("reservation_id", reservationID),
			zap.String("requester", requesterEmail),
			zap.String("reason", string(reason)),
		)
		return &response.CancelResult{OK: false, Reason: reason}, nil
	}

	if err := s.state.Save(ctx, agg); err != nil {
		s.log.Error("Failed to save cancellation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservation.ID),
		zap.String("seat_id", reservation.SeatID),
		zap.String("user_email", requesterEmail),
	)

	resResp := response.ReservationToResponse(&reservation)
	return &response.CancelResult{OK: true, Reservation: &resResp}, nil
}

func (s *reservationService) ListUserReservations(ctx context.Context, userEmail string) ([]entity.Reservation, error) {
	agg, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return agg.ReservationsOf(userEmail), nil
}

func (s *reservationService) GetSeatByID(ctx context.Context, seatID string) (*entity.Seat, error) {
	agg, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get seat %s: %w", seatID, err)
	}

	seat := agg.SeatByID(seatID)
	if seat == nil {
		return nil, nil
	}
	out := *seat
	return &out, nil
}

// Snapshot holds the lock for the load, so a reseed triggered here cannot
// overwrite a concurrent reservation. The aggregate is freshly decoded and
// owned by the caller.
func (s *reservationService) Snapshot(ctx context.Context) (*entity.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Load(ctx)
}
