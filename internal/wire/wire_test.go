package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"library-seats/internal/clock"
	"library-seats/internal/data/repository"
	"library-seats/pkg/database"
	"library-seats/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	t      *testing.T
	kv     *database.MemoryStore
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	kv := database.NewMemoryStore()
	log := zap.NewNop()
	config := &utils.Config{
		App:  utils.AppConfig{AllowedOrigins: []string{"*"}},
		Auth: utils.AuthConfig{BcryptCost: 4},
	}

	app := Wiring(kv, repository.NewRepository(kv, log), config,
		clock.NewManual(time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)), log)
	require.NoError(t, app.Service.Auth.EnsureSeedUser(context.Background()))

	return &testServer{t: t, kv: kv, router: app.Router}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(s.t, auth.Token)
	return auth.Token
}

type reserveData struct {
	OK          bool   `json:"ok"`
	Reason      string `json:"reason"`
	Reservation *struct {
		ID     string `json:"id"`
		SeatID string `json:"seat_id"`
		Status string `json:"status"`
	} `json:"reservation"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRouter_ReservationFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("test", "1234")

	code, env := s.do(http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	session := decode[map[string]string](t, env.Data)
	assert.Equal(t, "test", session["email"])
	assert.Equal(t, "테스트", session["name"])

	code, env = s.do(http.MethodPost, "/api/reservations", token, map[string]string{"seat_id": "main-reading-A1"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	reserved := decode[reserveData](t, env.Data)
	require.True(t, reserved.OK)
	require.NotNil(t, reserved.Reservation)
	assert.Equal(t, "main-reading-A1", reserved.Reservation.SeatID)
	assert.Equal(t, "active", reserved.Reservation.Status)

	code, env = s.do(http.MethodPost, "/api/reservations", token, map[string]string{"seat_id": "main-reading-A1"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "occupied", decode[reserveData](t, env.Data).Reason)

	code, env = s.do(http.MethodPost, "/api/reservations", token, map[string]string{"seat_id": "nowhere-Z9"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not-found", decode[reserveData](t, env.Data).Reason)

	code, env = s.do(http.MethodGet, "/api/seats/main-reading-A1", "", nil)
	require.Equal(t, http.StatusOK, code)
	seat := decode[map[string]any](t, env.Data)
	assert.Equal(t, "test", seat["reserved_by"])

	// another user may not cancel it
	code, _ = s.do(http.MethodPost, "/api/signup", "", map[string]string{"email": "Lee@Example.com", "password": "pw", "name": "Lee"})
	require.Equal(t, http.StatusCreated, code)
	other := s.login("lee@example.com", "pw")

	cancelPath := "/api/reservations/" + reserved.Reservation.ID + "/cancel"
	code, env = s.do(http.MethodPost, cancelPath, other, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", decode[reserveData](t, env.Data).Reason)

	code, env = s.do(http.MethodPost, cancelPath, token, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "cancelled", decode[reserveData](t, env.Data).Reservation.Status)

	code, env = s.do(http.MethodPost, cancelPath, token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already-cancelled", decode[reserveData](t, env.Data).Reason)

	code, _ = s.do(http.MethodPost, "/api/reservations/res-missing/cancel", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/seats/main-reading-A1", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, decode[map[string]any](t, env.Data)["reserved_by"])

	code, env = s.do(http.MethodGet, "/api/user/stats", token, nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[map[string]float64](t, env.Data)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["cancelled"])
	assert.Equal(t, float64(100), stats["cancellation_rate"])

	code, _ = s.do(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_UserReservationsPaginated(t *testing.T) {
	s := newTestServer(t)
	token := s.login("test", "1234")

	for _, seatID := range []string{"main-reading-A1", "main-reading-A2", "main-reading-A3"} {
		code, _ := s.do(http.MethodPost, "/api/reservations", token, map[string]string{"seat_id": seatID})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := s.do(http.MethodGet, "/api/user/reservations?page=2&per_page=2", token, nil)
	require.Equal(t, http.StatusOK, code)

	page := decode[struct {
		Items      []map[string]any `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			Page       int `json:"page"`
			PerPage    int `json:"per_page"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}](t, env.Data)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	code, env = s.do(http.MethodGet, "/api/user/reservations?page=9223372036854775807", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(decode[struct {
		Items json.RawMessage `json:"items"`
	}](t, env.Data).Items))

	code, env = s.do(http.MethodGet, "/api/user/reservations?per_page=500", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
}

func TestRouter_PublicViews(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/summary", "", nil)
	require.Equal(t, http.StatusOK, code)
	summary := decode[map[string]struct {
		Max     int `json:"max"`
		Current int `json:"current"`
	}](t, env.Data)
	assert.Equal(t, 18, summary["main"].Max)
	assert.Equal(t, 43, summary["annex"].Max)

	code, env = s.do(http.MethodGet, "/api/rooms?building=main", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 2)

	code, env = s.do(http.MethodGet, "/api/seatmap?building=annex", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 4)

	code, _ = s.do(http.MethodGet, "/api/rooms?building=basement", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/api/seats/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
}

func TestRouter_AuthErrors(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/api/signup", "", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)

	code, _ = s.do(http.MethodPost, "/api/signup", "", map[string]string{"email": "TEST", "password": "x"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/api/reservations", "", map[string]string{"seat_id": "main-reading-A1"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/user/dashboard", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login("test", "1234")
	code, env = s.do(http.MethodPost, "/api/reservations", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
}

type downStore struct {
	*database.MemoryStore
}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestRouter_HealthUnavailable(t *testing.T) {
	kv := downStore{database.NewMemoryStore()}
	log := zap.NewNop()
	app := Wiring(kv, repository.NewRepository(kv, log), &utils.Config{}, clock.NewSystem(), log)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
