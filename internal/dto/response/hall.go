package response

import (
	"cinema-operations/internal/data/entity"
)

type HallResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HallType   string `json:"hall_type"`
	TotalSeats int    `json:"total_seats"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:         hall.ID.String(),
		Name:       hall.Name,
		HallType:   hall.HallType,
		TotalSeats: hall.TotalSeats,
	}
}
