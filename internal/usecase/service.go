package usecase

import (
	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/events"
	"cinema-operations/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Schedule ScheduleService
	Movie    MovieService
	Hall     HallService
}

func NewService(
	repo *repository.Repository,
	tx repository.ScheduleTx,
	cache *ScreeningCache,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Schedule: NewScheduleService(repo, tx, cache, publisher, config.Scheduling, log),
		Movie:    NewMovieService(repo, log),
		Hall:     NewHallService(repo, log),
	}
}
