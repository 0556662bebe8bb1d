package response

import (
	"time"

	"cinema-operations/internal/data/entity"
	"cinema-operations/internal/data/repository"
)

type ScreeningMovie struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	DurationInMinutes int    `json:"duration_in_minutes"`
}

type ScreeningHall struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ScreeningResponse is the fully materialized view of a committed screening.
type ScreeningResponse struct {
	ID        string         `json:"id"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	BasePrice float64        `json:"base_price"`
	Movie     ScreeningMovie `json:"movie"`
	Hall      ScreeningHall  `json:"hall"`
	CreatedAt time.Time      `json:"created_at"`
}

// Helper converters
func ScreeningToResponse(screening *entity.Screening, movie *entity.Movie, hall *entity.Hall) ScreeningResponse {
	return ScreeningResponse{
		ID:        screening.ID.String(),
		StartTime: screening.StartTime,
		EndTime:   screening.EndTime,
		BasePrice: screening.BasePrice,
		Movie: ScreeningMovie{
			ID:                movie.ID.String(),
			Title:             movie.Title,
			DurationInMinutes: movie.DurationInMinutes,
		},
		Hall: ScreeningHall{
			ID:   hall.ID.String(),
			Name: hall.Name,
			Type: hall.HallType,
		},
		CreatedAt: screening.CreatedAt,
	}
}

func ScreeningDetailToResponse(d *repository.ScreeningDetail) ScreeningResponse {
	return ScreeningResponse{
		ID:        d.Screening.ID.String(),
		StartTime: d.Screening.StartTime,
		EndTime:   d.Screening.EndTime,
		BasePrice: d.Screening.BasePrice,
		Movie: ScreeningMovie{
			ID:                d.Screening.MovieID.String(),
			Title:             d.MovieTitle,
			DurationInMinutes: d.MovieDuration,
		},
		Hall: ScreeningHall{
			ID:   d.Screening.HallID.String(),
			Name: d.HallName,
			Type: d.HallType,
		},
		CreatedAt: d.Screening.CreatedAt,
	}
}
