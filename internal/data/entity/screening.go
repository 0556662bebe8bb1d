package entity

import (
	"time"

	"github.com/google/uuid"
)

// Screening is one scheduled showing of a movie in a hall. EndTime is always
// derived from StartTime plus the movie runtime and the cleaning buffer; it is
// never written independently.
type Screening struct {
	BaseNoDelete
	MovieID   uuid.UUID `db:"movie_id"`
	HallID    uuid.UUID `db:"hall_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	BasePrice float64   `db:"base_price"`
}
