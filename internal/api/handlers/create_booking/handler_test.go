package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string, caller *domain.Caller) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if caller != nil {
		r = r.WithContext(middleware.WithCaller(r.Context(), *caller))
	}
	return r
}

var alice = &domain.Caller{ID: "alice", Role: domain.RoleUser}

const validBody = `{"startLocalISO":"2024-06-01T19:00","endLocalISO":"2024-06-01T19:30","title":"Checkup"}`

func TestHandle_Created(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID: "b1", OwnerID: "alice", Start: start, End: start.Add(30 * time.Minute),
		Status: "confirmed", Title: "Checkup", ServiceType: "general", CreatedAt: start, UpdatedAt: start,
	}}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest(validBody, alice))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "b1", body.ID)
	assert.Equal(t, "2024-06-01T09:00:00Z", body.Booking.Start)
	assert.Equal(t, "2024-06-01T09:30:00Z", body.Booking.End)

	assert.Equal(t, "alice", uc.got.OwnerID)
	assert.Equal(t, "2024-06-01T19:00", uc.got.StartLocal)
	assert.Equal(t, "Checkup", uc.got.Title)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    handlers.Kind
		message string
	}{
		{"invalid range", createBooking.ErrInvalidTimeRange, 400, handlers.KindInvalidArgument, "Invalid time range."},
		{"duration", createBooking.ErrDurationOutOfRange, 400, handlers.KindFailedPrecondition, "Duration must be 15–180 minutes."},
		{"conflict", createBooking.ErrSlotAlreadyBooked, 409, handlers.KindAlreadyExists, "Time slot is already booked."},
		{"rate limited", createBooking.ErrRateLimited, 429, handlers.KindResourceExhausted, msgTooManyAttempts},
		{"unavailable", fmt.Errorf("%w: deadline exceeded", createBooking.ErrUnavailable), 503, handlers.KindUnavailable, msgUnavailable},
		{"internal", fmt.Errorf("%w: boom", createBooking.ErrInternal), 500, handlers.KindInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest(validBody, alice))

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		caller *domain.Caller
		status int
	}{
		{"anonymous", validBody, nil, http.StatusUnauthorized},
		{"malformed json", `{"startLocalISO":`, alice, http.StatusBadRequest},
		{"missing end", `{"startLocalISO":"2024-06-01T19:00"}`, alice, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := httptest.NewRecorder()
			NewHandler(uc, nopLogger{}).Handle(rec, newRequest(tt.body, tt.caller))

			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
