package adaptor

import (
	"encoding/json"
	"net/http"

	"library-seats/internal/data/entity"
	"library-seats/internal/dto/request"
	"library-seats/internal/dto/response"
	"library-seats/internal/usecase"
	"library-seats/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// reasonStatus maps a rejected operation to its HTTP status.
func reasonStatus(reason entity.Reason) int {
	switch reason {
	case entity.ReasonNotFound:
		return http.StatusNotFound
	case entity.ReasonForbidden:
		return http.StatusForbidden
	case entity.ReasonOccupied, entity.ReasonAlreadyCancelled:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ReserveSeat handles POST /api/reservations (protected)
func (h *ReservationHandler) ReserveSeat(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ReserveSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Reserve validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.ReserveSeat(r.Context(), req.SeatID, identity)
	if err != nil {
		h.log.Error("Failed to reserve seat", zap.Error(err), zap.String("seat_id", req.SeatID))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if !result.OK {
		utils.ResponseJSON(w, reasonStatus(result.Reason), false, string(result.Reason), result, nil)
		return
	}

	utils.ResponseCreated(w, "Seat reserved", result)
}

// CancelReservation handles POST /api/reservations/{id}/cancel (protected)
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")

	result, err := h.service.CancelReservation(r.Context(), reservationID, identity.Email)
	if err != nil {
		h.log.Error("Failed to cancel reservation", zap.Error(err), zap.String("reservation_id", reservationID))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if !result.OK {
		utils.ResponseJSON(w, reasonStatus(result.Reason), false, string(result.Reason), result, nil)
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled", result)
}

// GetUserReservations handles GET /api/user/reservations?page=&per_page= (protected)
func (h *ReservationHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Paging validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservations, err := h.service.ListUserReservations(r.Context(), identity.Email)
	if err != nil {
		h.log.Error("Failed to list reservations", zap.Error(err), zap.String("user_email", identity.Email))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	page := response.Paginate(response.ReservationsToResponse(reservations), req.Page, req.Limit())
	utils.ResponseSuccess(w, "success", page)
}

// GetSeat handles GET /api/seats/{id}
func (h *ReservationHandler) GetSeat(w http.ResponseWriter, r *http.Request) {
	seatID := chi.URLParam(r, "id")

	seat, err := h.service.GetSeatByID(r.Context(), seatID)
	if err != nil {
		h.log.Error("Failed to get seat", zap.Error(err), zap.String("seat_id", seatID))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	if seat == nil {
		utils.ResponseNotFound(w, "seat not found")
		return
	}

	utils.ResponseSuccess(w, "success", response.SeatToResponse(seat))
}
