package usecase

import (
	"library-seats/internal/clock"
	"library-seats/internal/data/repository"
	"library-seats/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Reservation ReservationService
	Stats       StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) *Service {
	reservation := NewReservationService(repo.State, clk, log)
	return &Service{
		Auth:        NewAuthService(repo, config, clk, log),
		Reservation: reservation,
		Stats:       NewStatsService(reservation, log),
	}
}
