package get_resource_rating

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings"
)

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/rating
// Публичный эндпоинт: {resourceId, avg, count}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	stats, err := h.service.GetStats(r.Context(), resourceID)
	if err != nil {
		if errors.Is(err, ratings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, "Invalid resource id.")
			return
		}
		h.logger.Error("GET /resources/{id}/rating - Failed to get stats: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
