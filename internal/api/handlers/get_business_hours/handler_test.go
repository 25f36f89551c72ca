package get_business_hours

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestHandle(t *testing.T) {
	hours := domain.BusinessHours{
		OpenMinute:      9*60 + 30,
		CloseMinute:     18 * 60,
		SlotStepMinutes: 15,
		ClosedWeekdays:  []time.Weekday{time.Sunday},
	}

	rec := httptest.NewRecorder()
	NewHandler(hours, time.UTC).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/business-hours", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"timezone": "UTC",
		"open": "09:30",
		"close": "18:00",
		"slotStepMinutes": 15,
		"minNoticeMinutes": 0,
		"advanceBookingDays": 0,
		"closedWeekdays": [0],
		"minDurationMinutes": 15,
		"maxDurationMinutes": 180,
		"defaultDurationMinutes": 30
	}`, rec.Body.String())
}
