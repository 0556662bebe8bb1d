package adaptor

import (
	"net/http"

	"cinema-operations/internal/usecase"
	"cinema-operations/pkg/utils"

	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/halls
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetHalls(r.Context())
	if err != nil {
		writeSchedulingError(w, h.log, err, "get halls")
		return
	}

	utils.ResponseSuccess(w, "Halls retrieved successfully", halls)
}
