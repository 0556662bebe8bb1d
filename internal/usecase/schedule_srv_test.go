package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinema-operations/internal/data/entity"
	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/dto/request"
	"cinema-operations/internal/events"
	"cinema-operations/internal/scheduling"
	"cinema-operations/internal/usecase"
	"cinema-operations/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is the shared backing state of the in-memory fakes. The schedule
// transaction fake serializes access per hall the way the row lock does in
// production, so the concurrency scenarios are meaningful.
type memStore struct {
	mu         sync.Mutex
	screenings map[uuid.UUID]*entity.Screening
	movies     map[uuid.UUID]*entity.Movie
	halls      map[uuid.UUID]*entity.Hall
	bookings   map[uuid.UUID]int

	conflictCalls int32
	createCalls   int32
}

func newMemStore() *memStore {
	return &memStore{
		screenings: make(map[uuid.UUID]*entity.Screening),
		movies:     make(map[uuid.UUID]*entity.Movie),
		halls:      make(map[uuid.UUID]*entity.Hall),
		bookings:   make(map[uuid.UUID]int),
	}
}

type fakeScreeningRepo struct{ store *memStore }

func (r *fakeScreeningRepo) Create(_ context.Context, screening *entity.Screening) error {
	atomic.AddInt32(&r.store.createCalls, 1)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *screening
	r.store.screenings[screening.ID] = &copied
	return nil
}

func (r *fakeScreeningRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screening, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	screening, ok := r.store.screenings[id]
	if !ok {
		return nil, nil
	}
	copied := *screening
	return &copied, nil
}

func (r *fakeScreeningRepo) FindFirstConflict(_ context.Context, hallID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (*repository.ScreeningConflict, error) {
	atomic.AddInt32(&r.store.conflictCalls, 1)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var earliest *entity.Screening
	for _, s := range r.store.screenings {
		if s.HallID != hallID || s.ID == excludeID {
			continue
		}
		if !scheduling.IntervalsOverlap(s.StartTime, s.EndTime, start, end) {
			continue
		}
		if earliest == nil || s.StartTime.Before(earliest.StartTime) {
			earliest = s
		}
	}
	if earliest == nil {
		return nil, nil
	}

	title := ""
	if movie, ok := r.store.movies[earliest.MovieID]; ok {
		title = movie.Title
	}
	return &repository.ScreeningConflict{
		ID:         earliest.ID,
		MovieTitle: title,
		StartTime:  earliest.StartTime,
		EndTime:    earliest.EndTime,
	}, nil
}

func (r *fakeScreeningRepo) UpdateSchedule(_ context.Context, screening *entity.Screening) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.screenings[screening.ID]; !ok {
		return fmt.Errorf("screening %s not found", screening.ID)
	}
	copied := *screening
	r.store.screenings[screening.ID] = &copied
	return nil
}

func (r *fakeScreeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.screenings[id]; !ok {
		return fmt.Errorf("screening %s not found", id)
	}
	delete(r.store.screenings, id)
	return nil
}

func (r *fakeScreeningRepo) ListDetailed(_ context.Context, filter repository.ScreeningListFilter, now time.Time) ([]*repository.ScreeningDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var details []*repository.ScreeningDetail
	for _, s := range r.store.screenings {
		if filter.HallID != nil && s.HallID != *filter.HallID {
			continue
		}
		if filter.MovieID != nil && s.MovieID != *filter.MovieID {
			continue
		}
		if filter.UpcomingOnly && s.StartTime.Before(now) {
			continue
		}
		detail := &repository.ScreeningDetail{Screening: *s}
		if movie, ok := r.store.movies[s.MovieID]; ok {
			detail.MovieTitle = movie.Title
			detail.MovieDuration = movie.DurationInMinutes
		}
		if hall, ok := r.store.halls[s.HallID]; ok {
			detail.HallName = hall.Name
			detail.HallType = hall.HallType
		}
		details = append(details, detail)
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].Screening.StartTime.Before(details[j].Screening.StartTime)
	})
	return details, nil
}

type fakeMovieRepo struct{ store *memStore }

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.movies[id], nil
}

func (r *fakeMovieRepo) FindAll(context.Context, int, int, *string) ([]*entity.Movie, error) {
	return nil, nil
}

func (r *fakeMovieRepo) CountAll(context.Context, *string) (int64, error) {
	return 0, nil
}

type fakeHallRepo struct{ store *memStore }

func (r *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.halls[id], nil
}

func (r *fakeHallRepo) FindAll(context.Context) ([]*entity.Hall, error) {
	return nil, nil
}

type fakeBookingRepo struct{ store *memStore }

func (r *fakeBookingRepo) CountActiveByScreening(_ context.Context, screeningID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookings[screeningID], nil
}

// fakeScheduleTx mirrors the production semantics: one mutation at a time
// per hall, different halls in parallel. Setting contention makes the next
// N invocations fail transiently.
type fakeScheduleTx struct {
	store      *memStore
	contention int32
	calls      int32

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (t *fakeScheduleTx) lockFor(hallID uuid.UUID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locks == nil {
		t.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	if _, ok := t.locks[hallID]; !ok {
		t.locks[hallID] = &sync.Mutex{}
	}
	return t.locks[hallID]
}

func (t *fakeScheduleTx) WithHallLock(_ context.Context, hallID uuid.UUID, fn func(repository.ScreeningRepository, repository.BookingRepository) error) error {
	atomic.AddInt32(&t.calls, 1)
	if atomic.AddInt32(&t.contention, -1) >= 0 {
		return repository.ErrTxContention
	}

	lock := t.lockFor(hallID)
	lock.Lock()
	defer lock.Unlock()

	return fn(&fakeScreeningRepo{store: t.store}, &fakeBookingRepo{store: t.store})
}

type fixture struct {
	store *memStore
	tx    *fakeScheduleTx
	svc   usecase.ScheduleService
}

func newFixture(config utils.SchedulingConfig) *fixture {
	store := newMemStore()
	tx := &fakeScheduleTx{store: store}
	repo := &repository.Repository{
		Movie:     &fakeMovieRepo{store: store},
		Hall:      &fakeHallRepo{store: store},
		Screening: &fakeScreeningRepo{store: store},
		Booking:   &fakeBookingRepo{store: store},
	}
	svc := usecase.NewScheduleService(repo, tx, nil, events.NopPublisher{}, config, zap.NewNop())
	return &fixture{store: store, tx: tx, svc: svc}
}

func defaultConfig() utils.SchedulingConfig {
	return utils.SchedulingConfig{BufferMinutes: 20, MaxBasePrice: 10000, ConflictRetries: 3}
}

func (f *fixture) addMovie(title string, duration int, status entity.ReleaseStatus) *entity.Movie {
	movie := &entity.Movie{
		Base:              entity.Base{ID: uuid.New()},
		Title:             title,
		DurationInMinutes: duration,
		ReleaseStatus:     status,
	}
	f.store.movies[movie.ID] = movie
	return movie
}

func (f *fixture) addHall(name, hallType string) *entity.Hall {
	hall := &entity.Hall{
		Base:     entity.Base{ID: uuid.New()},
		Name:     name,
		HallType: hallType,
	}
	f.store.halls[hall.ID] = hall
	return hall
}

func (f *fixture) addScreening(movie *entity.Movie, hall *entity.Hall, start time.Time) *entity.Screening {
	screening := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: start.Add(-24 * time.Hour)},
		MovieID:      movie.ID,
		HallID:       hall.ID,
		StartTime:    start,
		EndTime:      scheduling.ComputeEndTime(start, movie.DurationInMinutes, 20),
		BasePrice:    1000,
	}
	f.store.screenings[screening.ID] = screening
	return screening
}

// tomorrowAt returns tomorrow at the given hour, safely in the future.
func tomorrowAt(hour int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 2).Add(time.Duration(hour) * time.Hour)
}

func reasonOf(t *testing.T, err error) scheduling.ReasonCode {
	t.Helper()
	schedErr, ok := scheduling.AsError(err)
	require.True(t, ok, "expected a scheduling error, got %v", err)
	return schedErr.Code
}

func TestCreateScreeningSuccess(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "IMAX")

	start := tomorrowAt(18)
	view, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: start.Format(time.RFC3339),
		BasePrice: 1500,
	})

	require.NoError(t, err)
	require.NotNil(t, view)

	// duration 100 + buffer 20 means the hall is held for two hours
	assert.True(t, view.EndTime.Equal(start.Add(120*time.Minute)))
	assert.Equal(t, "Arrival", view.Movie.Title)
	assert.Equal(t, 100, view.Movie.DurationInMinutes)
	assert.Equal(t, "Hall A", view.Hall.Name)
	assert.Equal(t, "IMAX", view.Hall.Type)
	assert.Equal(t, 1500.0, view.BasePrice)
	assert.Len(t, f.store.screenings, 1)
}

func TestCreateScreeningConflict(t *testing.T) {
	f := newFixture(defaultConfig())
	playing := f.addMovie("Oppenheimer", 120, entity.ReleaseStatusNowPlaying)
	other := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	// Occupies 18:00-20:20 (120min movie + 20min cleaning)
	f.addScreening(playing, hall, tomorrowAt(18))

	view, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   other.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(19).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Nil(t, view)
	assert.Equal(t, scheduling.ReasonConflict, reasonOf(t, err))

	schedErr, _ := scheduling.AsError(err)
	require.NotNil(t, schedErr.Conflict)
	assert.Equal(t, "Oppenheimer", schedErr.Conflict.Title)
	assert.True(t, schedErr.Conflict.EndTime.Equal(tomorrowAt(18).Add(140*time.Minute)))

	// Nothing was committed
	assert.Len(t, f.store.screenings, 1)
}

func TestCreateScreeningAbuttingBoundary(t *testing.T) {
	f := newFixture(defaultConfig())
	playing := f.addMovie("Oppenheimer", 120, entity.ReleaseStatusNowPlaying)
	other := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	f.addScreening(playing, hall, tomorrowAt(18))

	// Starts at the exact buffer-adjusted end time 20:20
	start := tomorrowAt(18).Add(140 * time.Minute)
	view, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   other.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: start.Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Len(t, f.store.screenings, 2)
}

func TestCreateScreeningEarliestConflictReported(t *testing.T) {
	f := newFixture(defaultConfig())
	first := f.addMovie("First Feature", 120, entity.ReleaseStatusNowPlaying)
	second := f.addMovie("Second Feature", 120, entity.ReleaseStatusNowPlaying)
	candidate := f.addMovie("Candidate", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	// 18:00-20:20 and 20:20-22:40
	f.addScreening(first, hall, tomorrowAt(18))
	f.addScreening(second, hall, tomorrowAt(18).Add(140*time.Minute))

	// 19:30-21:30 overlaps both; the earliest one is reported
	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   candidate.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(19).Add(30 * time.Minute).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	schedErr, ok := scheduling.AsError(err)
	require.True(t, ok)
	require.NotNil(t, schedErr.Conflict)
	assert.Equal(t, "First Feature", schedErr.Conflict.Title)
}

func TestCreateScreeningPastStartSkipsStorage(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonValidation, reasonOf(t, err))

	schedErr, _ := scheduling.AsError(err)
	assert.Contains(t, schedErr.Fields, "start_time")

	// Rejected before the transactional path was ever entered
	assert.Equal(t, int32(0), f.tx.calls)
	assert.Equal(t, int32(0), f.store.conflictCalls)
	assert.Equal(t, int32(0), f.store.createCalls)
}

func TestCreateScreeningCollectsAllViolations(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
		BasePrice: 20000,
	})

	require.Error(t, err)
	schedErr, ok := scheduling.AsError(err)
	require.True(t, ok)
	assert.Contains(t, schedErr.Fields, "start_time")
	assert.Contains(t, schedErr.Fields, "base_price")
}

func TestCreateScreeningMovieNotFound(t *testing.T) {
	f := newFixture(defaultConfig())
	hall := f.addHall("Hall A", "standard")

	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   uuid.NewString(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(18).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonNotFound, reasonOf(t, err))
}

func TestCreateScreeningUnschedulableMovie(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Dune Part Three", 150, entity.ReleaseStatusComingSoon)
	hall := f.addHall("Hall A", "standard")

	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(18).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonValidation, reasonOf(t, err))

	schedErr, _ := scheduling.AsError(err)
	assert.Contains(t, schedErr.Fields["movie_id"], "Dune Part Three")
}

func TestConcurrentCreatesSameHallCommitExactlyOne(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	start := tomorrowAt(18).Format(time.RFC3339)
	req := func() *request.CreateScreeningRequest {
		return &request.CreateScreeningRequest{
			MovieID:   movie.ID.String(),
			HallID:    hall.ID.String(),
			StartTime: start,
			BasePrice: 1000,
		}
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.CreateScreening(context.Background(), req())
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		rejections++
		code := reasonOf(t, err)
		assert.Contains(t, []scheduling.ReasonCode{scheduling.ReasonConflict, scheduling.ReasonContention}, code)
	}

	assert.Equal(t, 1, successes, "exactly one concurrent create must commit")
	assert.Equal(t, 1, rejections)
	assert.Len(t, f.store.screenings, 1)
}

func TestConcurrentCreatesDifferentHallsBothCommit(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hallA := f.addHall("Hall A", "standard")
	hallB := f.addHall("Hall B", "standard")

	start := tomorrowAt(18).Format(time.RFC3339)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, hall := range []*entity.Hall{hallA, hallB} {
		wg.Add(1)
		go func(i int, hallID string) {
			defer wg.Done()
			_, results[i] = f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
				MovieID:   movie.ID.String(),
				HallID:    hallID,
				StartTime: start,
				BasePrice: 1000,
			})
		}(i, hall.ID.String())
	}
	wg.Wait()

	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.Len(t, f.store.screenings, 2)
}

func TestUpdateScreeningExcludesSelf(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")
	screening := f.addScreening(movie, hall, tomorrowAt(18))

	// Shift by 30 minutes into its own current window
	newStart := tomorrowAt(18).Add(30 * time.Minute)
	view, err := f.svc.UpdateScreening(context.Background(), screening.ID.String(), &request.UpdateScreeningRequest{
		StartTime: newStart.Format(time.RFC3339),
		BasePrice: 1800,
	})

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, view.StartTime.Equal(newStart))
	assert.True(t, view.EndTime.Equal(newStart.Add(120*time.Minute)))
	assert.Equal(t, 1800.0, view.BasePrice)

	stored := f.store.screenings[screening.ID]
	assert.True(t, stored.EndTime.Equal(newStart.Add(120*time.Minute)))
}

func TestUpdateScreeningConflict(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	blocker := f.addMovie("Oppenheimer", 120, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	target := f.addScreening(movie, hall, tomorrowAt(10))
	f.addScreening(blocker, hall, tomorrowAt(18))

	// Moving the morning screening into the evening slot must be rejected
	_, err := f.svc.UpdateScreening(context.Background(), target.ID.String(), &request.UpdateScreeningRequest{
		StartTime: tomorrowAt(19).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonConflict, reasonOf(t, err))

	// The original window is untouched
	stored := f.store.screenings[target.ID]
	assert.True(t, stored.StartTime.Equal(tomorrowAt(10)))
}

func TestUpdateScreeningNotFound(t *testing.T) {
	f := newFixture(defaultConfig())

	_, err := f.svc.UpdateScreening(context.Background(), uuid.NewString(), &request.UpdateScreeningRequest{
		StartTime: tomorrowAt(18).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonNotFound, reasonOf(t, err))
}

func TestDeleteScreeningBlockedByActiveBooking(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")
	screening := f.addScreening(movie, hall, tomorrowAt(18))
	f.store.bookings[screening.ID] = 1

	err := f.svc.DeleteScreening(context.Background(), screening.ID.String())

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonDeleteBlocked, reasonOf(t, err))

	schedErr, _ := scheduling.AsError(err)
	assert.Contains(t, schedErr.Message, "1 active booking(s)")

	// The screening stays queryable, unchanged
	views, listErr := f.svc.ListScreenings(context.Background(), request.ScreeningFilter{UpcomingOnly: true})
	require.NoError(t, listErr)
	require.Len(t, views, 1)
	assert.Equal(t, screening.ID.String(), views[0].ID)
}

func TestDeleteScreeningSuccess(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")
	screening := f.addScreening(movie, hall, tomorrowAt(18))

	err := f.svc.DeleteScreening(context.Background(), screening.ID.String())

	require.NoError(t, err)
	assert.Empty(t, f.store.screenings)
}

func TestListScreeningsOrderedAndIdempotent(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	// Seeded out of order, plus one already in the past
	f.addScreening(movie, hall, tomorrowAt(21))
	f.addScreening(movie, hall, tomorrowAt(15))
	f.addScreening(movie, hall, tomorrowAt(18))
	past := f.addScreening(movie, hall, tomorrowAt(18))
	past.StartTime = time.Now().UTC().Add(-3 * time.Hour)
	past.EndTime = past.StartTime.Add(120 * time.Minute)

	filter := request.ScreeningFilter{UpcomingOnly: true}

	first, err := f.svc.ListScreenings(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, first, 3)

	for i := 1; i < len(first); i++ {
		assert.True(t, !first[i].StartTime.Before(first[i-1].StartTime), "results must be ascending by start time")
	}

	second, err := f.svc.ListScreenings(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Past screenings appear once the flag is off
	all, err := f.svc.ListScreenings(context.Background(), request.ScreeningFilter{UpcomingOnly: false})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListScreeningsFilterByHall(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hallA := f.addHall("Hall A", "standard")
	hallB := f.addHall("Hall B", "IMAX")

	f.addScreening(movie, hallA, tomorrowAt(15))
	f.addScreening(movie, hallB, tomorrowAt(18))

	views, err := f.svc.ListScreenings(context.Background(), request.ScreeningFilter{
		HallID:       hallB.ID.String(),
		UpcomingOnly: true,
	})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Hall B", views[0].Hall.Name)
}

func TestCreateScreeningRetriesTransientContention(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	// First two attempts lose to concurrent writers, third wins
	f.tx.contention = 2

	view, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(18).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, int32(3), f.tx.calls)
}

func TestCreateScreeningContentionExhaustsRetries(t *testing.T) {
	f := newFixture(defaultConfig())
	movie := f.addMovie("Arrival", 100, entity.ReleaseStatusNowPlaying)
	hall := f.addHall("Hall A", "standard")

	f.tx.contention = 10

	_, err := f.svc.CreateScreening(context.Background(), &request.CreateScreeningRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: tomorrowAt(18).Format(time.RFC3339),
		BasePrice: 1000,
	})

	require.Error(t, err)
	assert.Equal(t, scheduling.ReasonContention, reasonOf(t, err))
	assert.Equal(t, int32(3), f.tx.calls)
	assert.Empty(t, f.store.screenings)
}
