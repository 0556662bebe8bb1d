package scheduling

import (
	"fmt"
	"math"
	"time"

	"cinema-operations/internal/data/entity"
)

// Candidate is a proposed screening before any persistence is attempted.
type Candidate struct {
	MovieID   string
	HallID    string
	StartTime time.Time
	BasePrice float64
}

// ValidateCandidate checks a candidate against the resolved movie and hall
// records and the scheduling policy. All violations are collected into a
// field->message map instead of short-circuiting, so a caller can display
// every problem at once. An empty map means the candidate is valid.
func ValidateCandidate(c Candidate, movie *entity.Movie, hall *entity.Hall, policy Policy, now time.Time) map[string]string {
	errs := make(map[string]string)

	if c.MovieID == "" {
		errs["movie_id"] = "Movie is required"
	}
	if c.HallID == "" {
		errs["hall_id"] = "Hall is required"
	}

	if c.StartTime.IsZero() {
		errs["start_time"] = "Start time is required"
	} else if !c.StartTime.After(now) {
		errs["start_time"] = "Start time must be in the future"
	}

	switch {
	case math.IsNaN(c.BasePrice) || math.IsInf(c.BasePrice, 0):
		errs["base_price"] = "Price must be a finite number"
	case c.BasePrice <= 0:
		errs["base_price"] = "Price must be greater than 0"
	case c.BasePrice > policy.MaxBasePrice:
		errs["base_price"] = fmt.Sprintf("Price exceeds maximum limit (%.0f)", policy.MaxBasePrice)
	}

	if movie == nil {
		if _, seen := errs["movie_id"]; !seen {
			errs["movie_id"] = "Selected movie not found"
		}
	} else if !movie.ReleaseStatus.Schedulable() {
		errs["movie_id"] = fmt.Sprintf("Cannot schedule %q - status is %s", movie.Title, movie.ReleaseStatus)
	}

	if hall == nil {
		if _, seen := errs["hall_id"]; !seen {
			errs["hall_id"] = "Selected hall not found"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
