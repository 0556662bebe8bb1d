package repository

import (
	"context"
	"fmt"

	"cinema-operations/internal/data/entity"
	"cinema-operations/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository is the narrow read contract the scheduling engine consumes.
// The catalog import pipeline owns writes and lives outside this service.
type MovieRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int, releaseStatus *string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, releaseStatus *string) (int64, error)
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, release_date, duration_in_minutes, release_status, created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterURL,
		&movie.ReleaseDate,
		&movie.DurationInMinutes,
		&movie.ReleaseStatus,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int, releaseStatus *string) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, release_date, duration_in_minutes, release_status, created_at, updated_at
		FROM movies
		WHERE deleted_at IS NULL
		  AND ($3::text IS NULL OR release_status = $3)
		ORDER BY release_date DESC, title
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, releaseStatus)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Stringp("release_status", releaseStatus),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterURL,
			&movie.ReleaseDate,
			&movie.DurationInMinutes,
			&movie.ReleaseStatus,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, releaseStatus *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM movies
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR release_status = $1)
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, releaseStatus).Scan(&total); err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.Stringp("release_status", releaseStatus),
		)
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}
