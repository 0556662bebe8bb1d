package repository

import (
	"context"
	"fmt"

	"cinema-operations/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRepository exposes only what the scheduling engine needs from the
// booking collaborator: whether active bookings gate a screening's deletion.
type BookingRepository interface {
	CountActiveByScreening(ctx context.Context, screeningID uuid.UUID) (int, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CountActiveByScreening(ctx context.Context, screeningID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE screening_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND deleted_at IS NULL
	`

	var count int
	if err := r.db.QueryRow(ctx, query, screeningID).Scan(&count); err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return 0, fmt.Errorf("count active bookings for screening %s: %w", screeningID.String(), err)
	}

	return count, nil
}
