package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	filters  []domain.BookingsFilter
}

func (r *fakeRepo) GetByFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	return r.bookings, r.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var morning = domain.BusinessHours{OpenMinute: 9 * 60, CloseMinute: 12 * 60, SlotStepMinutes: 30}

func newUseCase(repo *fakeRepo, hours domain.BusinessHours, loc *time.Location, now time.Time) *UseCase {
	return NewUseCase(repo, hours, loc, nopLogger{}).WithTimeProvider(fixedClock{now: now})
}

func startsOf(resp *Response) []string {
	out := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, s.StartLocal)
	}
	return out
}

func TestExecute_FiltersConflicts(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{ID: "a", Start: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), Status: domain.StatusConfirmed},
		{ID: "b", Start: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), End: time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC), Status: domain.StatusCancelled},
	}}
	uc := newUseCase(repo, morning, time.UTC, time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-01"})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:30", "11:00", "11:30"}, startsOf(resp))
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, "2024-06-01", resp.Date)
	assert.Equal(t, "UTC", resp.Timezone)

	require.Len(t, repo.filters, 1)
	f := repo.filters[0]
	assert.Equal(t, domain.StatusConfirmed, *f.Status)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), *f.To)
}

func TestExecute_DurationAndClose(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, morning, time.UTC, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-01", DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, startsOf(resp))
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, time.Hour, last.End.Sub(last.Start))
}

func TestExecute_MinNotice(t *testing.T) {
	hours := morning
	hours.MinNoticeMinutes = 30
	uc := newUseCase(&fakeRepo{}, hours, time.UTC, time.Date(2024, 6, 1, 10, 10, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "11:30"}, startsOf(resp))
}

func TestExecute_EmptyDays(t *testing.T) {
	closedSaturday := morning
	closedSaturday.ClosedWeekdays = []time.Weekday{time.Saturday}

	tests := []struct {
		name  string
		hours domain.BusinessHours
		now   time.Time
	}{
		{"past date", morning, time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)},
		{"closed weekday", closedSaturday, time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			resp, err := newUseCase(repo, tt.hours, time.UTC, tt.now).
				Execute(context.Background(), &Request{Date: "2024-06-01"})

			require.NoError(t, err)
			assert.NotNil(t, resp.Slots)
			assert.Empty(t, resp.Slots)
			assert.Empty(t, repo.filters, "no store read without candidates")
		})
	}
}

func TestExecute_SkipsDSTGap(t *testing.T) {
	melbourne, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	hours := domain.BusinessHours{OpenMinute: 60, CloseMinute: 4 * 60, SlotStepMinutes: 30}
	uc := newUseCase(&fakeRepo{}, hours, melbourne, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-10-06"})
	require.NoError(t, err)

	assert.Equal(t, []string{"01:00", "01:30", "03:00", "03:30"}, startsOf(resp))
	for _, s := range resp.Slots {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
		assert.Equal(t, time.UTC, s.Start.Location())
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	hours := morning
	hours.AdvanceBookingDays = 7
	uc := newUseCase(&fakeRepo{}, hours, time.UTC, time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"bad date", &Request{Date: "01/06/2024"}, ErrInvalidDate},
		{"too short", &Request{Date: "2024-05-21", DurationMinutes: 14}, ErrDurationOutOfRange},
		{"too long", &Request{Date: "2024-05-21", DurationMinutes: 181}, ErrDurationOutOfRange},
		{"too far ahead", &Request{Date: "2024-06-01"}, ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection reset")}
	uc := newUseCase(repo, morning, time.UTC, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{Date: "2024-06-01"})
	assert.ErrorIs(t, err, ErrInternal)
}
