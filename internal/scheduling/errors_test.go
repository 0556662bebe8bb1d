package scheduling_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cinema-operations/internal/scheduling"

	"github.com/stretchr/testify/assert"
)

func TestConflictErrorMessage(t *testing.T) {
	end := time.Date(2026, 9, 12, 20, 20, 0, 0, time.UTC)

	err := scheduling.NewConflictError("Oppenheimer", end, 20)

	assert.Equal(t, scheduling.ReasonConflict, err.Code)
	assert.Contains(t, err.Message, "Oppenheimer")
	assert.Contains(t, err.Message, "20:20")
	assert.Contains(t, err.Message, "20min cleaning")
	if assert.NotNil(t, err.Conflict) {
		assert.Equal(t, "Oppenheimer", err.Conflict.Title)
		assert.True(t, err.Conflict.EndTime.Equal(end))
	}
}

func TestDeleteBlockedErrorCarriesCount(t *testing.T) {
	err := scheduling.NewDeleteBlockedError(3)

	assert.Equal(t, scheduling.ReasonDeleteBlocked, err.Code)
	assert.Contains(t, err.Message, "3 active booking(s)")
}

func TestAsError(t *testing.T) {
	schedErr := scheduling.NewNotFoundError("screening", "abc")

	// Also through a wrap layer
	wrapped := fmt.Errorf("delete screening: %w", schedErr)

	got, ok := scheduling.AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, scheduling.ReasonNotFound, got.Code)

	_, ok = scheduling.AsError(errors.New("plain failure"))
	assert.False(t, ok)
}
