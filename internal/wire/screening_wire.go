package wire

import (
	"cinema-operations/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScreening(r chi.Router, screeningHandler *adaptor.ScreeningHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/screenings - List screenings (public, anyone can view)
	r.Get("/api/screenings", screeningHandler.ListScreenings)

	// ==================== ADMIN ROUTES ====================
	// Authentication fronts these routes at the gateway; the scheduling
	// service itself has no session concept.
	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Post("/", screeningHandler.CreateScreening)
		r.Put("/{id}", screeningHandler.UpdateScreening)
		r.Delete("/{id}", screeningHandler.DeleteScreening)
	})
}
