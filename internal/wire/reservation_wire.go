package wire

import (
	"net/http"

	"library-seats/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/seats/{id}", reservationHandler.GetSeat)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/reservations", reservationHandler.ReserveSeat)
	r.With(auth).Post("/api/reservations/{id}/cancel", reservationHandler.CancelReservation)
	r.With(auth).Get("/api/user/reservations", reservationHandler.GetUserReservations)
}
