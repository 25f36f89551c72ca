package rate_resource

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

const (
	msgSignInRequired    = "Sign in required."
	msgInvalidRating     = "Rating must be an integer between 1 and 5."
	msgInvalidResourceID = "Invalid resource id."
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

// Handle PUT /api/v1/resources/{resourceId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgSignInRequired)
		return
	}

	var req RateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRating)
		return
	}

	resourceID := mux.Vars(r)["resourceId"]
	stats, err := h.service.Rate(r.Context(), &models.RateRequest{
		Caller:     caller,
		ResourceID: resourceID,
		Value:      *req.Value,
	})
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidRating):
			handlers.RespondBadRequest(w, msgInvalidRating)

		case errors.Is(err, ratings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidResourceID)

		default:
			h.logger.Error("PUT /resources/{id}/rating - Failed to rate: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
