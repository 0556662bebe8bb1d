package response

import (
	"cinema-operations/internal/data/entity"
	"time"
)

type MovieResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	PosterURL         *string   `json:"poster_url,omitempty"`
	ReleaseDate       string    `json:"release_date"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	ReleaseStatus     string    `json:"release_status"`
	Schedulable       bool      `json:"schedulable"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// Helper converter
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		PosterURL:         movie.PosterURL,
		ReleaseDate:       movie.ReleaseDate.Format("2006-01-02"),
		DurationInMinutes: movie.DurationInMinutes,
		ReleaseStatus:     string(movie.ReleaseStatus),
		Schedulable:       movie.ReleaseStatus.Schedulable(),
		CreatedAt:         movie.CreatedAt,
	}
}
