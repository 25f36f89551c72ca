package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// dayWindow возвращает [open, close) рабочего дня в абсолютном времени
func dayWindow(day time.Time, hours domain.BusinessHours) domain.Interval {
	y, m, d := day.Date()
	return domain.Interval{
		Start: time.Date(y, m, d, 0, hours.OpenMinute, 0, 0, day.Location()),
		End:   time.Date(y, m, d, 0, hours.CloseMinute, 0, 0, day.Location()),
	}
}

// generateCandidates перечисляет начала слотов от открытия с шагом SlotStepMinutes.
// Слот, заканчивающийся после закрытия, отбрасывается; начала, попавшие в переход
// на летнее время, пропускаются; слоты раньше now + MinNoticeMinutes отбрасываются.
func generateCandidates(day time.Time, hours domain.BusinessHours, duration int, now time.Time) []domain.Interval {
	if hours.IsClosed(day.Weekday()) {
		return []domain.Interval{}
	}

	step := hours.SlotStepMinutes
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	window := dayWindow(day, hours)
	earliest := now.Add(time.Duration(hours.MinNoticeMinutes) * time.Minute)
	length := time.Duration(duration) * time.Minute
	y, m, d := day.Date()

	candidates := make([]domain.Interval, 0)
	for minute := hours.OpenMinute; minute < hours.CloseMinute; minute += step {
		start := time.Date(y, m, d, 0, minute, 0, 0, day.Location())
		if start.Hour()*60+start.Minute() != minute {
			continue
		}

		end := start.Add(length)
		if end.After(window.End) {
			break
		}
		if start.Before(earliest) {
			continue
		}
		candidates = append(candidates, domain.Interval{Start: start, End: end})
	}
	return candidates
}

// filterAvailable оставляет кандидатов без пересечений с подтверждёнными бронированиями
func filterAvailable(candidates []domain.Interval, bookings []*domain.Booking) []Slot {
	slots := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		if create_booking.HasConflict(c, bookings) {
			continue
		}
		slots = append(slots, Slot{
			Start:      c.Start.UTC(),
			End:        c.End.UTC(),
			StartLocal: c.Start.Format(domain.TimeFormat),
		})
	}
	return slots
}
