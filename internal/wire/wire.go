package wire

import (
	"context"
	"net/http"
	"time"

	"library-seats/internal/adaptor"
	"library-seats/internal/clock"
	"library-seats/internal/data/repository"
	"library-seats/internal/usecase"
	"library-seats/pkg/database"
	"library-seats/pkg/middleware"
	"library-seats/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(
	kv database.KVStore,
	repo *repository.Repository,
	config *utils.Config,
	clk clock.Clock,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, clk, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, kv, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	kv database.KVStore,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	auth := middleware.AuthSession(service.Auth, logger)

	wireAuth(r, handler.Auth, auth)
	wireReservation(r, handler.Reservation, auth)
	wireStats(r, handler.Stats, auth)

	r.Get("/health", healthCheck(kv, logger))

	return r
}

// healthCheck reports 503 when the backing store does not answer.
func healthCheck(kv database.KVStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := kv.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseUnavailable(w, "store unavailable")
			return
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
