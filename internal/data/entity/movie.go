package entity

import (
	"time"
)

type ReleaseStatus string

const (
	ReleaseStatusNowPlaying ReleaseStatus = "now_playing"
	ReleaseStatusComingSoon ReleaseStatus = "coming_soon"
)

// Schedulable reports whether screenings may be created for a movie in this
// status. Only movies currently playing can be put on the schedule.
func (s ReleaseStatus) Schedulable() bool {
	return s == ReleaseStatusNowPlaying
}

type Movie struct {
	Base
	Title             string        `db:"title"`
	Description       *string       `db:"description"`
	PosterURL         *string       `db:"poster_url"`
	ReleaseDate       time.Time     `db:"release_date"`
	DurationInMinutes int           `db:"duration_in_minutes"`
	ReleaseStatus     ReleaseStatus `db:"release_status"`
}
