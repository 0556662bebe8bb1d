package wire

import (
	"cinema-operations/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// GET /api/movies - List movies (public, anyone can view)
	r.Get("/api/movies", movieHandler.GetMovies)

	// GET /api/movies/{id} - Movie details (public)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
}
