package request

// CreateScreeningRequest proposes a new screening. StartTime is RFC3339;
// the end time is always derived server-side from the movie runtime plus
// the cleaning buffer and cannot be supplied.
type CreateScreeningRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid"`
	HallID    string  `json:"hall_id" validate:"required,uuid"`
	StartTime string  `json:"start_time" validate:"required"`
	BasePrice float64 `json:"base_price" validate:"required"`
}

// UpdateScreeningRequest reschedules an existing screening. Hall and movie
// are immutable after creation; moving a screening to another hall is
// modeled as delete plus create.
type UpdateScreeningRequest struct {
	StartTime string  `json:"start_time" validate:"required"`
	BasePrice float64 `json:"base_price" validate:"required"`
}

// ScreeningFilter narrows the screening listing. UpcomingOnly defaults to
// true at the handler.
type ScreeningFilter struct {
	HallID       string `json:"hall_id" validate:"omitempty,uuid"`
	MovieID      string `json:"movie_id" validate:"omitempty,uuid"`
	UpcomingOnly bool   `json:"upcoming_only"`
}
