package rate_resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

type stubService struct {
	got *models.RateRequest
	err error
}

func (s *stubService) Rate(_ context.Context, req *models.RateRequest) (*models.StatsResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.StatsResponse{ResourceID: req.ResourceID, Avg: float64(req.Value), Count: 1}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc RatingService, body string, withCaller bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/resources/room-1/rating", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"resourceId": "room-1"})
	if withCaller {
		r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{ID: "alice", Role: domain.RoleUser}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, r)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"value":4}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", svc.got.Caller.ID)
	assert.Equal(t, "room-1", svc.got.ResourceID)
	assert.JSONEq(t, `{"resourceId":"room-1","avg":4,"count":1}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withCaller bool
		svcErr     error
		status     int
		kind       handlers.Kind
	}{
		{"anonymous", `{"value":4}`, false, nil, 401, handlers.KindUnauthenticated},
		{"missing value", `{}`, true, nil, 400, handlers.KindInvalidArgument},
		{"fractional", `{"value":3.5}`, true, nil, 400, handlers.KindInvalidArgument},
		{"out of range", `{"value":6}`, true, ratings.ErrInvalidRating, 400, handlers.KindInvalidArgument},
		{"internal", `{"value":5}`, true, ratings.ErrInternal, 500, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.svcErr}, tt.body, tt.withCaller)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
		})
	}
}
