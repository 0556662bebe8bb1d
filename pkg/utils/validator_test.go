package utils_test

import (
	"testing"

	"cinema-operations/pkg/utils"

	"github.com/stretchr/testify/assert"
)

type scheduleForm struct {
	MovieID   string  `validate:"required,uuid"`
	HallID    string  `validate:"required,uuid"`
	StartTime string  `validate:"required"`
	BasePrice float64 `validate:"required"`
}

func TestValidateStructValid(t *testing.T) {
	form := scheduleForm{
		MovieID:   "8e7a7a2e-9f3d-4c41-9a76-0f3f2a1b6c55",
		HallID:    "6a0f2b4e-7f71-49fd-8a6f-2a33c0a1de09",
		StartTime: "2026-09-12T18:00:00Z",
		BasePrice: 1500,
	}

	assert.Nil(t, utils.ValidateStruct(&form))
}

func TestValidateStructSnakeCaseKeys(t *testing.T) {
	errs := utils.ValidateStruct(&scheduleForm{})

	// Field names surface as the snake_case keys of the request body
	assert.Contains(t, errs, "movie_id")
	assert.Contains(t, errs, "hall_id")
	assert.Contains(t, errs, "start_time")
	assert.Contains(t, errs, "base_price")
	assert.Equal(t, "This field is required", errs["start_time"])
}

func TestValidateStructUUIDMessage(t *testing.T) {
	form := scheduleForm{
		MovieID:   "not-a-uuid",
		HallID:    "6a0f2b4e-7f71-49fd-8a6f-2a33c0a1de09",
		StartTime: "2026-09-12T18:00:00Z",
		BasePrice: 1500,
	}

	errs := utils.ValidateStruct(&form)
	assert.Equal(t, "Must be a valid UUID", errs["movie_id"])
	assert.Len(t, errs, 1)
}

func TestFormatValidationErrors(t *testing.T) {
	formatted := utils.FormatValidationErrors(map[string]string{
		"start_time": "This field is required",
	})
	assert.Equal(t, "start_time: This field is required", formatted)

	assert.Empty(t, utils.FormatValidationErrors(nil))
}
