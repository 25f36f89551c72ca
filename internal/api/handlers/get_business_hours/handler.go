package get_business_hours

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Handler отдаёт рабочие часы из конфигурации сервиса
type Handler struct {
	response *BusinessHoursResponse
}

func NewHandler(hours domain.BusinessHours, loc *time.Location) *Handler {
	return &Handler{response: FromDomain(hours, loc)}
}

// Handle GET /api/v1/business-hours
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
