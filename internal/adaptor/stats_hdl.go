package adaptor

import (
	"errors"
	"net/http"

	"library-seats/internal/usecase"
	"library-seats/pkg/utils"

	"go.uber.org/zap"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// Summary handles GET /api/summary
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// ListRooms handles GET /api/rooms?building=
func (h *StatsHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context(), r.URL.Query().Get("building"))
	if err != nil {
		h.handleServiceError(w, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// ListSeatMap handles GET /api/seatmap?building=
func (h *StatsHandler) ListSeatMap(w http.ResponseWriter, r *http.Request) {
	maps, err := h.service.ListSeatMap(r.Context(), r.URL.Query().Get("building"))
	if err != nil {
		h.handleServiceError(w, err, "list seat map")
		return
	}

	utils.ResponseSuccess(w, "success", maps)
}

// GetUserDashboard handles GET /api/user/dashboard (protected)
func (h *StatsHandler) GetUserDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	dashboard, err := h.service.GetUserDashboard(r.Context(), identity.Email)
	if err != nil {
		h.handleServiceError(w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// GetUserStats handles GET /api/user/stats (protected)
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.GetUserStats(r.Context(), identity.Email)
	if err != nil {
		h.handleServiceError(w, err, "get user stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

func (h *StatsHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, usecase.ErrUnknownBuilding) {
		h.log.Warn(operation+" failed - unknown building", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
