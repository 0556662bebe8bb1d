package wire

import (
	"cinema-operations/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler) {
	// GET /api/halls - List halls (public)
	r.Get("/api/halls", hallHandler.GetHalls)
}
