package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest разбирает дату и нормализует длительность
func validateRequest(req *Request, loc *time.Location) (time.Time, int, error) {
	day, err := domain.ParseDate(req.Date, loc)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return time.Time{}, 0, fmt.Errorf("%w: got %d", ErrDurationOutOfRange, duration)
	}

	return day, duration, nil
}

// validateAdvance проверяет ограничение на бронирование заранее (0 = без ограничений)
func validateAdvance(day, now time.Time, advanceBookingDays int) error {
	if advanceBookingDays == 0 {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, day.Location())
	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}
	return nil
}
