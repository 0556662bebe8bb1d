package scheduling_test

import (
	"testing"
	"time"

	"cinema-operations/internal/data/entity"
	"cinema-operations/internal/scheduling"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testPolicy = scheduling.Policy{BufferMinutes: 20, MaxBasePrice: 10000}

func schedulableMovie() *entity.Movie {
	return &entity.Movie{
		Base:              entity.Base{ID: uuid.New()},
		Title:             "Interstellar",
		DurationInMinutes: 169,
		ReleaseStatus:     entity.ReleaseStatusNowPlaying,
	}
}

func testHall() *entity.Hall {
	return &entity.Hall{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Hall A",
		HallType: "IMAX",
	}
}

func validCandidate(now time.Time) scheduling.Candidate {
	return scheduling.Candidate{
		MovieID:   uuid.NewString(),
		HallID:    uuid.NewString(),
		StartTime: now.Add(2 * time.Hour),
		BasePrice: 1200,
	}
}

func TestValidateCandidateValid(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	errs := scheduling.ValidateCandidate(validCandidate(now), schedulableMovie(), testHall(), testPolicy, now)

	assert.Empty(t, errs)
}

func TestValidateCandidateCollectsAllViolations(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	candidate := scheduling.Candidate{
		MovieID:   "",
		HallID:    "",
		StartTime: now.Add(-time.Hour),
		BasePrice: -5,
	}

	errs := scheduling.ValidateCandidate(candidate, nil, nil, testPolicy, now)

	// Every problem is reported at once, not just the first
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "movie_id")
	assert.Contains(t, errs, "hall_id")
	assert.Contains(t, errs, "start_time")
	assert.Contains(t, errs, "base_price")
}

func TestValidateCandidateStartTime(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	movie := schedulableMovie()
	hall := testHall()

	tests := []struct {
		name    string
		start   time.Time
		wantErr bool
	}{
		{"in the past", now.Add(-time.Minute), true},
		{"exactly now", now, true},
		{"in the future", now.Add(time.Minute), false},
		{"zero value", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate(now)
			candidate.StartTime = tt.start

			errs := scheduling.ValidateCandidate(candidate, movie, hall, testPolicy, now)
			if tt.wantErr {
				assert.Contains(t, errs, "start_time")
			} else {
				assert.NotContains(t, errs, "start_time")
			}
		})
	}
}

func TestValidateCandidateBasePrice(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	movie := schedulableMovie()
	hall := testHall()

	tests := []struct {
		name    string
		price   float64
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -10, true},
		{"at ceiling", 10000, false},
		{"above ceiling", 10000.01, true},
		{"typical", 1500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate(now)
			candidate.BasePrice = tt.price

			errs := scheduling.ValidateCandidate(candidate, movie, hall, testPolicy, now)
			if tt.wantErr {
				assert.Contains(t, errs, "base_price")
			} else {
				assert.NotContains(t, errs, "base_price")
			}
		})
	}
}

func TestValidateCandidateMovieStatus(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	movie := schedulableMovie()
	movie.Title = "Dune Part Three"
	movie.ReleaseStatus = entity.ReleaseStatusComingSoon

	errs := scheduling.ValidateCandidate(validCandidate(now), movie, testHall(), testPolicy, now)

	// The status-mismatch message names the movie's actual status
	assert.Contains(t, errs["movie_id"], "Dune Part Three")
	assert.Contains(t, errs["movie_id"], string(entity.ReleaseStatusComingSoon))
}

func TestValidateCandidateMissingReferences(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	errs := scheduling.ValidateCandidate(validCandidate(now), nil, nil, testPolicy, now)

	assert.Equal(t, "Selected movie not found", errs["movie_id"])
	assert.Equal(t, "Selected hall not found", errs["hall_id"])
}

func TestValidateCandidateCustomPolicy(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

	candidate := validCandidate(now)
	candidate.BasePrice = 600

	strict := scheduling.Policy{BufferMinutes: 20, MaxBasePrice: 500}
	errs := scheduling.ValidateCandidate(candidate, schedulableMovie(), testHall(), strict, now)

	assert.Contains(t, errs, "base_price")
}
