package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-operations/internal/data/entity"
	"cinema-operations/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScreeningConflict is the earliest screening overlapping a candidate
// interval, joined with its movie title for error reporting.
type ScreeningConflict struct {
	ID         uuid.UUID
	MovieTitle string
	StartTime  time.Time
	EndTime    time.Time
}

// ScreeningListFilter narrows ListDetailed. Nil id pointers mean "any".
type ScreeningListFilter struct {
	HallID       *uuid.UUID
	MovieID      *uuid.UUID
	UpcomingOnly bool
}

// ScreeningDetail is a screening with its movie and hall summaries resolved,
// as the query facade exposes it.
type ScreeningDetail struct {
	Screening     entity.Screening
	MovieTitle    string
	MovieDuration int
	HallName      string
	HallType      string
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	// FindFirstConflict returns the earliest-starting screening in the hall
	// whose [start_time, end_time) interval overlaps [start, end), skipping
	// excludeID when it is non-nil. Must run under the same transaction as
	// the write that follows it.
	FindFirstConflict(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*ScreeningConflict, error)
	UpdateSchedule(ctx context.Context, screening *entity.Screening) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListDetailed(ctx context.Context, filter ScreeningListFilter, now time.Time) ([]*ScreeningDetail, error)
}

type screeningRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewScreeningRepository(db database.Querier, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, hall_id, start_time, end_time, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.StartTime,
		screening.EndTime,
		screening.BasePrice,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("hall_id", screening.HallID.String()),
			zap.Time("start_time", screening.StartTime),
		)
		return fmt.Errorf("create screening for movie %s hall %s: %w",
			screening.MovieID.String(), screening.HallID.String(), err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, base_price, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.HallID,
		&screening.StartTime,
		&screening.EndTime,
		&screening.BasePrice,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindFirstConflict(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*ScreeningConflict, error) {
	// start_time < $3 AND end_time > $2 is the half-open overlap predicate;
	// abutting screenings do not match.
	query := `
		SELECT s.id, m.title, s.start_time, s.end_time
		FROM screenings s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.hall_id = $1
		  AND s.start_time < $3
		  AND s.end_time > $2
		  AND ($4::uuid IS NULL OR s.id <> $4)
		ORDER BY s.start_time
		LIMIT 1
	`

	var exclude *uuid.UUID
	if excludeID != uuid.Nil {
		exclude = &excludeID
	}

	var conflict ScreeningConflict
	err := r.db.QueryRow(ctx, query, hallID, start, end, exclude).Scan(
		&conflict.ID,
		&conflict.MovieTitle,
		&conflict.StartTime,
		&conflict.EndTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check screening conflicts",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find conflict in hall %s: %w", hallID.String(), err)
	}

	return &conflict, nil
}

func (r *screeningRepository) UpdateSchedule(ctx context.Context, screening *entity.Screening) error {
	// Hall and movie are immutable after creation; only the time window and
	// price can be rewritten, end_time always alongside start_time.
	query := `
		UPDATE screenings
		SET start_time = $2, end_time = $3, base_price = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.StartTime,
		screening.EndTime,
		screening.BasePrice,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", screening.ID.String())
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", id.String())
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) ListDetailed(ctx context.Context, filter ScreeningListFilter, now time.Time) ([]*ScreeningDetail, error) {
	query := `
		SELECT s.id, s.movie_id, s.hall_id, s.start_time, s.end_time, s.base_price, s.created_at, s.updated_at,
		       m.title, m.duration_in_minutes,
		       h.name, h.hall_type
		FROM screenings s
		JOIN movies m ON m.id = s.movie_id
		JOIN halls h ON h.id = s.hall_id
		WHERE ($1::uuid IS NULL OR s.hall_id = $1)
		  AND ($2::uuid IS NULL OR s.movie_id = $2)
		  AND (NOT $3::bool OR s.start_time >= $4)
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, filter.HallID, filter.MovieID, filter.UpcomingOnly, now)
	if err != nil {
		r.log.Error("Failed to list screenings",
			zap.Error(err),
			zap.Bool("upcoming_only", filter.UpcomingOnly),
		)
		return nil, fmt.Errorf("list screenings: %w", err)
	}
	defer rows.Close()

	var details []*ScreeningDetail
	for rows.Next() {
		var d ScreeningDetail
		err := rows.Scan(
			&d.Screening.ID,
			&d.Screening.MovieID,
			&d.Screening.HallID,
			&d.Screening.StartTime,
			&d.Screening.EndTime,
			&d.Screening.BasePrice,
			&d.Screening.CreatedAt,
			&d.Screening.UpdatedAt,
			&d.MovieTitle,
			&d.MovieDuration,
			&d.HallName,
			&d.HallType,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		details = append(details, &d)
	}

	return details, nil
}
