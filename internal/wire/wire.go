// internal/wire/wire.go
package wire

import (
	"cinema-operations/internal/adaptor"
	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/events"
	"cinema-operations/internal/usecase"
	"cinema-operations/pkg/middleware"
	"cinema-operations/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	tx repository.ScheduleTx,
	cache *usecase.ScreeningCache,
	publisher events.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, tx, cache, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireScreening(r, handler.Screening)
	wireMovie(r, handler.Movie)
	wireHall(r, handler.Hall)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
