package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-operations/internal/dto/request"
	"cinema-operations/internal/usecase"
	"cinema-operations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScheduleService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// ListScreenings handles GET /api/screenings
func (h *ScreeningHandler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := request.ScreeningFilter{
		HallID:  query.Get("hall_id"),
		MovieID: query.Get("movie_id"),
		// Past screenings are hidden unless explicitly requested
		UpcomingOnly: utils.ParseBool(query.Get("upcoming_only"), true),
	}

	screenings, err := h.service.ListScreenings(r.Context(), filter)
	if err != nil {
		writeSchedulingError(w, h.log, err, "list screenings")
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", screenings)
}

// CreateScreening handles POST /api/admin/screenings
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		writeSchedulingError(w, h.log, err, "create screening")
		return
	}

	utils.ResponseCreated(w, "Screening scheduled successfully", screening)
}

// UpdateScreening handles PUT /api/admin/screenings/{id}
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	var req request.UpdateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), screeningID, &req)
	if err != nil {
		writeSchedulingError(w, h.log, err, "update screening")
		return
	}

	utils.ResponseSuccess(w, "Screening updated successfully", screening)
}

// DeleteScreening handles DELETE /api/admin/screenings/{id}
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	if err := h.service.DeleteScreening(r.Context(), screeningID); err != nil {
		writeSchedulingError(w, h.log, err, "delete screening")
		return
	}

	utils.ResponseSuccess(w, "Screening deleted successfully", nil)
}
