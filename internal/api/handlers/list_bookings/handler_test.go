package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

type stubService struct {
	got *models.ListRangeRequest
	err error
}

func (s *stubService) ListRange(_ context.Context, req *models.ListRangeRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}, Total: 0}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc BookingService, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+query, nil)
	r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{ID: "root", Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, r)
	return rec
}

func TestHandle_ParsesRange(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "?from=2024-06-01T00:00:00Z&to=2024-06-02T00:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), svc.got.From)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), svc.got.To)
	assert.Equal(t, "root", svc.got.Caller.ID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing to", "?from=2024-06-01T00:00:00Z", nil, http.StatusBadRequest},
		{"not rfc3339", "?from=2024-06-01&to=2024-06-02", nil, http.StatusBadRequest},
		{"not admin", "?from=2024-06-01T00:00:00Z&to=2024-06-02T00:00:00Z", bookings.ErrAccessDenied, http.StatusForbidden},
		{"inverted", "?from=2024-06-02T00:00:00Z&to=2024-06-01T00:00:00Z", bookings.ErrInvalidTimeRange, http.StatusBadRequest},
		{"internal", "?from=2024-06-01T00:00:00Z&to=2024-06-02T00:00:00Z", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
