package repository

import (
	"cinema-operations/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie     MovieRepository
	Hall      HallRepository
	Screening ScreeningRepository
	Booking   BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:     NewMovieRepository(db, log),
		Hall:      NewHallRepository(db, log),
		Screening: NewScreeningRepository(db, log),
		Booking:   NewBookingRepository(db, log),
	}
}
