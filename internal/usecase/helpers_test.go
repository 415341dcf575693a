package usecase

import (
	"context"
	"testing"
	"time"

	"library-seats/internal/clock"
	"library-seats/internal/data/entity"
	"library-seats/internal/data/repository"
	"library-seats/pkg/database"
	"library-seats/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testStart = time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	kv    *database.MemoryStore
	repo  *repository.Repository
	clock *clock.Manual
	svc   *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := database.NewMemoryStore()
	log := zap.NewNop()
	repo := repository.NewRepository(kv, log)
	clk := clock.NewManual(testStart)
	config := &utils.Config{Auth: utils.AuthConfig{BcryptCost: 4}}

	return &testEnv{
		kv:    kv,
		repo:  repo,
		clock: clk,
		svc:   NewService(repo, config, clk, log),
	}
}

func (e *testEnv) reserve(t *testing.T, seatID, email string) string {
	t.Helper()
	res, err := e.svc.Reservation.ReserveSeat(context.Background(), seatID, entity.Identity{Email: email})
	require.NoError(t, err)
	require.True(t, res.OK, "reserve %s: %s", seatID, res.Reason)
	return res.Reservation.ID
}

func (e *testEnv) cancel(t *testing.T, reservationID, email string) {
	t.Helper()
	res, err := e.svc.Reservation.CancelReservation(context.Background(), reservationID, email)
	require.NoError(t, err)
	require.True(t, res.OK, "cancel %s: %s", reservationID, res.Reason)
}

func (e *testEnv) rawState(t *testing.T) []byte {
	t.Helper()
	raw, err := e.kv.Get(context.Background(), repository.StateKey)
	require.NoError(t, err)
	return raw
}

func (e *testEnv) assertConsistent(t *testing.T) {
	t.Helper()
	agg, err := e.repo.State.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, agg.CheckConsistency())
}
