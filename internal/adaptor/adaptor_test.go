package adaptor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"library-seats/internal/data/entity"
	"library-seats/internal/dto/response"
	"library-seats/internal/usecase"
	"library-seats/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var errStore = errors.New("store down")

type brokenReservations struct{}

func (brokenReservations) ReserveSeat(context.Context, string, entity.Identity) (*response.ReserveResult, error) {
	return nil, errStore
}

func (brokenReservations) CancelReservation(context.Context, string, string) (*response.CancelResult, error) {
	return nil, errStore
}

func (brokenReservations) ListUserReservations(context.Context, string) ([]entity.Reservation, error) {
	return nil, errStore
}

func (brokenReservations) GetSeatByID(context.Context, string) (*entity.Seat, error) {
	return nil, errStore
}

func (brokenReservations) Snapshot(context.Context) (*entity.Aggregate, error) {
	return nil, errStore
}

type brokenStats struct {
	usecase.StatsService
	err error
}

func (b brokenStats) ListRooms(context.Context, string) ([]response.RoomView, error) {
	return nil, b.err
}

func withIdentity(r *http.Request) *http.Request {
	ctx := utils.SetIdentityContext(r.Context(), entity.Identity{Email: "kim@example.com"})
	return r.WithContext(ctx)
}

func TestReasonStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, reasonStatus(entity.ReasonNotFound))
	assert.Equal(t, http.StatusConflict, reasonStatus(entity.ReasonOccupied))
	assert.Equal(t, http.StatusForbidden, reasonStatus(entity.ReasonForbidden))
	assert.Equal(t, http.StatusConflict, reasonStatus(entity.ReasonAlreadyCancelled))
}

func TestReservationHandler_StoreFailure(t *testing.T) {
	h := NewReservationHandler(brokenReservations{}, zap.NewNop())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		req     *http.Request
	}{
		{
			name:    "reserve",
			handler: h.ReserveSeat,
			req:     withIdentity(httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{"seat_id":"main-reading-A1"}`))),
		},
		{
			name:    "cancel",
			handler: h.CancelReservation,
			req:     withIdentity(httptest.NewRequest(http.MethodPost, "/api/reservations/res-1/cancel", nil)),
		},
		{
			name:    "list",
			handler: h.GetUserReservations,
			req:     withIdentity(httptest.NewRequest(http.MethodGet, "/api/user/reservations", nil)),
		},
		{
			name:    "get seat",
			handler: h.GetSeat,
			req:     httptest.NewRequest(http.MethodGet, "/api/seats/main-reading-A1", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, tt.req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotContains(t, rec.Body.String(), errStore.Error())
		})
	}
}

func TestReservationHandler_RequiresIdentity(t *testing.T) {
	h := NewReservationHandler(brokenReservations{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ReserveSeat(rec, httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatsHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "unknown building", err: fmt.Errorf("%w: basement", usecase.ErrUnknownBuilding), code: http.StatusBadRequest},
		{name: "store failure", err: errStore, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewStatsHandler(brokenStats{err: tt.err}, zap.NewNop())
			rec := httptest.NewRecorder()
			h.ListRooms(rec, httptest.NewRequest(http.MethodGet, "/api/rooms?building=basement", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
