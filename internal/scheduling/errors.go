package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// ReasonCode is the machine-checkable classification of a rejected request.
type ReasonCode string

const (
	ReasonValidation    ReasonCode = "validation"
	ReasonConflict      ReasonCode = "conflict"
	ReasonDeleteBlocked ReasonCode = "delete_blocked"
	ReasonNotFound      ReasonCode = "not_found"
	ReasonContention    ReasonCode = "contention"
	ReasonInternal      ReasonCode = "internal"
)

// ConflictingScreening identifies the screening a candidate collided with,
// so callers can propose a new slot.
type ConflictingScreening struct {
	Title   string    `json:"title"`
	EndTime time.Time `json:"end_time"`
}

// Error is the terminal failure of a scheduling request. Every rejection
// carries a reason code and a human-readable message; validation failures
// additionally carry the per-field violations, conflicts the screening that
// occupies the hall.
type Error struct {
	Code     ReasonCode            `json:"reason_code"`
	Message  string                `json:"message"`
	Fields   map[string]string     `json:"fields,omitempty"`
	Conflict *ConflictingScreening `json:"conflicting_screening,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError wraps collected field violations.
func NewValidationError(fields map[string]string) *Error {
	return &Error{
		Code:    ReasonValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewConflictError names the screening occupying the hall and when it lets
// go of it, cleaning buffer included.
func NewConflictError(title string, endTime time.Time, bufferMinutes int) *Error {
	return &Error{
		Code: ReasonConflict,
		Message: fmt.Sprintf("Conflict! %q is showing in this hall until %s (including %dmin cleaning)",
			title, endTime.Format("15:04"), bufferMinutes),
		Conflict: &ConflictingScreening{Title: title, EndTime: endTime},
	}
}

// NewDeleteBlockedError reports how many active bookings prevent deletion.
func NewDeleteBlockedError(activeBookings int) *Error {
	return &Error{
		Code:    ReasonDeleteBlocked,
		Message: fmt.Sprintf("cannot delete screening - it has %d active booking(s)", activeBookings),
	}
}

// NewNotFoundError reports an unresolved entity reference.
func NewNotFoundError(kind, id string) *Error {
	return &Error{
		Code:    ReasonNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
	}
}

// NewContentionError reports that the commit kept losing to concurrent
// writes on the same hall even after retrying.
func NewContentionError() *Error {
	return &Error{
		Code:    ReasonContention,
		Message: "storage contention on hall, please retry",
	}
}

// NewInternalError wraps an unexpected infrastructure failure.
func NewInternalError(err error) *Error {
	return &Error{
		Code:    ReasonInternal,
		Message: err.Error(),
	}
}

// AsError unwraps err into a scheduling *Error if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
