package usecase

import (
	"context"

	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/dto/response"
	"cinema-operations/internal/scheduling"

	"go.uber.org/zap"
)

// HallService lists the physical halls available for scheduling. Writes go
// through the seat-layout editor, not this service.
type HallService interface {
	GetHalls(ctx context.Context) ([]response.HallResponse, error)
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(
	repo *repository.Repository,
	log *zap.Logger,
) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) GetHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get halls", zap.Error(err))
		return nil, scheduling.NewInternalError(err)
	}

	hallResponses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		hallResponses[i] = response.HallToResponse(hall)
	}

	return hallResponses, nil
}
