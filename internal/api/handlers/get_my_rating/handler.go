package get_my_rating

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
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

// Handle GET /api/v1/resources/{resourceId}/rating/me
// value равен null, если пользователь ещё не оценивал ресурс
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "Sign in required.")
		return
	}

	resourceID := mux.Vars(r)["resourceId"]
	rating, err := h.service.GetUserRating(r.Context(), resourceID, caller)
	if err != nil {
		if errors.Is(err, ratings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, "Invalid resource id.")
			return
		}
		h.logger.Error("GET /resources/{id}/rating/me - Failed to get rating: resource_id=%s, user_id=%s, error=%v", resourceID, caller.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rating)
}
