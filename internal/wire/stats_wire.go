package wire

import (
	"net/http"

	"library-seats/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/summary", statsHandler.Summary)
	r.Get("/api/rooms", statsHandler.ListRooms)
	r.Get("/api/seatmap", statsHandler.ListSeatMap)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/user/dashboard", statsHandler.GetUserDashboard)
	r.With(auth).Get("/api/user/stats", statsHandler.GetUserStats)
}
