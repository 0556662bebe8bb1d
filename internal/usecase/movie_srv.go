package usecase

import (
	"context"

	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/dto/request"
	"cinema-operations/internal/dto/response"
	"cinema-operations/internal/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovieService is the read-only catalog surface the scheduling UI consumes;
// catalog writes belong to the import pipeline outside this service.
type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, releaseStatus *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, releaseStatus *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, limit, offset, releaseStatus)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("release_status", releaseStatus),
		)
		return nil, scheduling.NewInternalError(err)
	}

	total, err := s.repo.Movie.CountAll(ctx, releaseStatus)
	if err != nil {
		s.log.Error("Failed to count movies",
			zap.Error(err),
			zap.Stringp("release_status", releaseStatus),
		)
		return nil, scheduling.NewInternalError(err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format",
			zap.String("movie_id", movieID),
			zap.Error(err),
		)
		return nil, scheduling.NewValidationError(map[string]string{"movie_id": "Must be a valid UUID"})
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, scheduling.NewInternalError(err)
	}

	if movie == nil {
		return nil, scheduling.NewNotFoundError("movie", movieID)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}
