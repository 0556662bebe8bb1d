package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-operations/internal/data/entity"
	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/dto/request"
	"cinema-operations/internal/dto/response"
	"cinema-operations/internal/events"
	"cinema-operations/internal/scheduling"
	"cinema-operations/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService is the scheduling transaction manager plus the read-only
// query facade. Every mutation runs validation, conflict detection and the
// write as one per-hall serialized unit; rejections surface as
// *scheduling.Error with a reason code.
type ScheduleService interface {
	CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, screeningID string) error
	ListScreenings(ctx context.Context, filter request.ScreeningFilter) ([]response.ScreeningResponse, error)
}

type scheduleService struct {
	repo      *repository.Repository
	tx        repository.ScheduleTx
	cache     *ScreeningCache
	publisher events.Publisher
	policy    scheduling.Policy
	retries   int
	now       func() time.Time
	log       *zap.Logger
}

func NewScheduleService(
	repo *repository.Repository,
	tx repository.ScheduleTx,
	cache *ScreeningCache,
	publisher events.Publisher,
	config utils.SchedulingConfig,
	log *zap.Logger,
) ScheduleService {
	retries := config.ConflictRetries
	if retries < 1 {
		retries = 1
	}
	return &scheduleService{
		repo:      repo,
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		policy: scheduling.Policy{
			BufferMinutes: config.BufferMinutes,
			MaxBasePrice:  config.MaxBasePrice,
		},
		retries: retries,
		now:     time.Now,
		log:     log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	// Structural validation first, before anything touches storage
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screening validation failed", zap.Any("errors", errs))
		return nil, scheduling.NewValidationError(errs)
	}

	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, scheduling.NewValidationError(map[string]string{
			"start_time": "Invalid start time format",
		})
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, scheduling.NewValidationError(map[string]string{"movie_id": "Must be a valid UUID"})
	}
	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, scheduling.NewValidationError(map[string]string{"hall_id": "Must be a valid UUID"})
	}

	// Resolve the referenced movie and hall
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("resolve movie: %w", err))
	}
	if movie == nil {
		return nil, scheduling.NewNotFoundError("movie", req.MovieID)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("resolve hall: %w", err))
	}
	if hall == nil {
		return nil, scheduling.NewNotFoundError("hall", req.HallID)
	}

	// Temporal and business validation, all violations collected
	candidate := scheduling.Candidate{
		MovieID:   req.MovieID,
		HallID:    req.HallID,
		StartTime: startTime,
		BasePrice: req.BasePrice,
	}
	if errs := scheduling.ValidateCandidate(candidate, movie, hall, s.policy, s.now()); len(errs) > 0 {
		s.log.Warn("Create screening rejected",
			zap.Any("errors", errs),
			zap.String("movie_id", req.MovieID),
			zap.String("hall_id", req.HallID),
		)
		return nil, scheduling.NewValidationError(errs)
	}

	endTime := scheduling.ComputeEndTime(startTime, movie.DurationInMinutes, s.policy.BufferMinutes)

	now := s.now()
	screening := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		HallID:    hallID,
		StartTime: startTime,
		EndTime:   endTime,
		BasePrice: req.BasePrice,
	}

	// Conflict check and insert are one atomic unit, serialized per hall
	err = s.withHallLockRetry(ctx, hallID, func(screenings repository.ScreeningRepository, _ repository.BookingRepository) error {
		conflict, err := screenings.FindFirstConflict(ctx, hallID, startTime, endTime, uuid.Nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return scheduling.NewConflictError(conflict.MovieTitle, conflict.EndTime, s.policy.BufferMinutes)
		}
		return screenings.Create(ctx, screening)
	})
	if err != nil {
		return nil, s.mapTxError(err, hallID)
	}

	s.log.Info("Screening scheduled",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_title", movie.Title),
		zap.String("hall", hall.Name),
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
	)

	s.publishEvent(ctx, events.TypeScreeningScheduled, screening, movie.Title)
	s.cache.Invalidate(ctx)

	view := response.ScreeningToResponse(screening, movie, hall)
	return &view, nil
}

func (s *scheduleService) UpdateScreening(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, scheduling.NewValidationError(map[string]string{"screening_id": "Must be a valid UUID"})
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screening validation failed", zap.Any("errors", errs))
		return nil, scheduling.NewValidationError(errs)
	}

	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, scheduling.NewValidationError(map[string]string{
			"start_time": "Invalid start time format",
		})
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("find screening: %w", err))
	}
	if screening == nil {
		return nil, scheduling.NewNotFoundError("screening", screeningID)
	}

	// Hall and movie are immutable after creation; the movie is loaded for
	// its runtime, the hall only for the response view.
	movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("resolve movie: %w", err))
	}
	if movie == nil {
		return nil, scheduling.NewNotFoundError("movie", screening.MovieID.String())
	}
	hall, err := s.repo.Hall.FindByID(ctx, screening.HallID)
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("resolve hall: %w", err))
	}
	if hall == nil {
		return nil, scheduling.NewNotFoundError("hall", screening.HallID.String())
	}

	errs := make(map[string]string)
	if !startTime.After(s.now()) {
		errs["start_time"] = "Start time must be in the future"
	}
	if req.BasePrice <= 0 {
		errs["base_price"] = "Price must be greater than 0"
	} else if req.BasePrice > s.policy.MaxBasePrice {
		errs["base_price"] = fmt.Sprintf("Price exceeds maximum limit (%.0f)", s.policy.MaxBasePrice)
	}
	if len(errs) > 0 {
		s.log.Warn("Update screening rejected",
			zap.Any("errors", errs),
			zap.String("screening_id", screeningID),
		)
		return nil, scheduling.NewValidationError(errs)
	}

	endTime := scheduling.ComputeEndTime(startTime, movie.DurationInMinutes, s.policy.BufferMinutes)

	screening.StartTime = startTime
	screening.EndTime = endTime
	screening.BasePrice = req.BasePrice
	screening.UpdatedAt = s.now()

	err = s.withHallLockRetry(ctx, screening.HallID, func(screenings repository.ScreeningRepository, _ repository.BookingRepository) error {
		// The screening being moved must not collide with itself
		conflict, err := screenings.FindFirstConflict(ctx, screening.HallID, startTime, endTime, id)
		if err != nil {
			return err
		}
		if conflict != nil {
			return scheduling.NewConflictError(conflict.MovieTitle, conflict.EndTime, s.policy.BufferMinutes)
		}
		return screenings.UpdateSchedule(ctx, screening)
	})
	if err != nil {
		return nil, s.mapTxError(err, screening.HallID)
	}

	s.log.Info("Screening rescheduled",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_title", movie.Title),
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
	)

	s.publishEvent(ctx, events.TypeScreeningRescheduled, screening, movie.Title)
	s.cache.Invalidate(ctx)

	view := response.ScreeningToResponse(screening, movie, hall)
	return &view, nil
}

func (s *scheduleService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return scheduling.NewValidationError(map[string]string{"screening_id": "Must be a valid UUID"})
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return scheduling.NewInternalError(fmt.Errorf("find screening: %w", err))
	}
	if screening == nil {
		return scheduling.NewNotFoundError("screening", screeningID)
	}

	movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
	if err != nil {
		return scheduling.NewInternalError(fmt.Errorf("resolve movie: %w", err))
	}

	err = s.withHallLockRetry(ctx, screening.HallID, func(screenings repository.ScreeningRepository, bookings repository.BookingRepository) error {
		// Re-read under the lock: the screening and its bookings may have
		// changed since the lookup above
		current, err := screenings.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return scheduling.NewNotFoundError("screening", screeningID)
		}

		active, err := bookings.CountActiveByScreening(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return scheduling.NewDeleteBlockedError(active)
		}

		return screenings.Delete(ctx, id)
	})
	if err != nil {
		return s.mapTxError(err, screening.HallID)
	}

	title := ""
	if movie != nil {
		title = movie.Title
	}
	s.log.Info("Screening cancelled",
		zap.String("screening_id", screeningID),
		zap.String("movie_title", title),
	)

	s.publishEvent(ctx, events.TypeScreeningCancelled, screening, title)
	s.cache.Invalidate(ctx)

	return nil
}

func (s *scheduleService) ListScreenings(ctx context.Context, filter request.ScreeningFilter) ([]response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(&filter); len(errs) > 0 {
		return nil, scheduling.NewValidationError(errs)
	}

	if views, ok := s.cache.Get(ctx, filter); ok {
		return views, nil
	}

	repoFilter := repository.ScreeningListFilter{UpcomingOnly: filter.UpcomingOnly}
	if filter.HallID != "" {
		hallID, err := uuid.Parse(filter.HallID)
		if err != nil {
			return nil, scheduling.NewValidationError(map[string]string{"hall_id": "Must be a valid UUID"})
		}
		repoFilter.HallID = &hallID
	}
	if filter.MovieID != "" {
		movieID, err := uuid.Parse(filter.MovieID)
		if err != nil {
			return nil, scheduling.NewValidationError(map[string]string{"movie_id": "Must be a valid UUID"})
		}
		repoFilter.MovieID = &movieID
	}

	details, err := s.repo.Screening.ListDetailed(ctx, repoFilter, s.now())
	if err != nil {
		return nil, scheduling.NewInternalError(fmt.Errorf("list screenings: %w", err))
	}

	views := make([]response.ScreeningResponse, len(details))
	for i, d := range details {
		views[i] = response.ScreeningDetailToResponse(d)
	}

	s.cache.Set(ctx, filter, views)

	return views, nil
}

// withHallLockRetry drives the per-hall transaction with a small bounded
// backoff on transient write-write contention. Business rejections pass
// through untouched.
func (s *scheduleService) withHallLockRetry(ctx context.Context, hallID uuid.UUID, fn func(repository.ScreeningRepository, repository.BookingRepository) error) error {
	var err error
	for attempt := 1; attempt <= s.retries; attempt++ {
		err = s.tx.WithHallLock(ctx, hallID, fn)
		if !errors.Is(err, repository.ErrTxContention) {
			return err
		}
		s.log.Warn("Schedule transaction contention",
			zap.String("hall_id", hallID.String()),
			zap.Int("attempt", attempt),
		)
		if attempt < s.retries {
			select {
			case <-ctx.Done():
				return err
			case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
			}
		}
	}
	return err
}

func (s *scheduleService) mapTxError(err error, hallID uuid.UUID) error {
	if schedErr, ok := scheduling.AsError(err); ok {
		return schedErr
	}
	if errors.Is(err, repository.ErrTxContention) {
		return scheduling.NewContentionError()
	}
	if errors.Is(err, repository.ErrHallGone) {
		return scheduling.NewNotFoundError("hall", hallID.String())
	}
	s.log.Error("Schedule transaction failed",
		zap.Error(err),
		zap.String("hall_id", hallID.String()),
	)
	return scheduling.NewInternalError(err)
}

func (s *scheduleService) publishEvent(ctx context.Context, eventType string, screening *entity.Screening, movieTitle string) {
	event := events.ScreeningEvent{
		Type:        eventType,
		ScreeningID: screening.ID.String(),
		MovieID:     screening.MovieID.String(),
		HallID:      screening.HallID.String(),
		MovieTitle:  movieTitle,
		StartTime:   screening.StartTime,
		EndTime:     screening.EndTime,
		OccurredAt:  s.now(),
	}
	if err := s.publisher.PublishScreeningEvent(ctx, event); err != nil {
		// Best-effort: the commit already happened
		s.log.Warn("Failed to publish screening event",
			zap.Error(err),
			zap.String("event_type", eventType),
			zap.String("screening_id", event.ScreeningID),
		)
	}
}

// parseStartTime accepts RFC3339 and the HTML datetime-local format the
// admin UI submits.
func parseStartTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", raw)
}
