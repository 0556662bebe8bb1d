package adaptor

import (
	"net/http"

	"cinema-operations/internal/scheduling"
	"cinema-operations/internal/usecase"
	"cinema-operations/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Screening *ScreeningHandler
	Movie     *MovieHandler
	Hall      *HallHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Screening: NewScreeningHandler(service.Schedule, log),
		Movie:     NewMovieHandler(service.Movie, log),
		Hall:      NewHallHandler(service.Hall, log),
	}
}

// writeSchedulingError maps a scheduling reason code to the HTTP response.
// Anything that is not a *scheduling.Error is an unexpected failure.
func writeSchedulingError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	schedErr, ok := scheduling.AsError(err)
	if !ok {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch schedErr.Code {
	case scheduling.ReasonValidation:
		log.Warn(operation+" validation failed",
			zap.Any("fields", schedErr.Fields),
			zap.String("operation", operation),
		)
		utils.ResponseBadRequest(w, schedErr.Message, schedErr.Fields)

	case scheduling.ReasonConflict:
		log.Warn(operation+" rejected - schedule conflict",
			zap.String("operation", operation),
			zap.Any("conflict", schedErr.Conflict),
		)
		utils.ResponseConflict(w, schedErr.Message, schedErr)

	case scheduling.ReasonDeleteBlocked:
		log.Warn(operation+" rejected - active bookings",
			zap.String("operation", operation),
		)
		utils.ResponseConflict(w, schedErr.Message, schedErr)

	case scheduling.ReasonNotFound:
		log.Warn(operation+" failed - not found",
			zap.String("operation", operation),
			zap.String("message", schedErr.Message),
		)
		utils.ResponseNotFound(w, schedErr.Message)

	case scheduling.ReasonContention:
		log.Warn(operation+" failed - storage contention",
			zap.String("operation", operation),
		)
		utils.ResponseServiceUnavailable(w, schedErr.Message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
