package create_booking

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// findConflict возвращает первое подтверждённое бронирование, пересекающееся с candidate.
// Полный предикат пересечения применяется к любому набору: предварительный фильтр
// хранилища (start < candidate.End) только сокращает выборку.
func findConflict(candidate domain.Interval, existing []*domain.Booking) *domain.Booking {
	for _, b := range existing {
		if b == nil || !b.IsConfirmed() {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}

// HasConflict сообщает, пересекается ли candidate хотя бы с одним подтверждённым бронированием
func HasConflict(candidate domain.Interval, existing []*domain.Booking) bool {
	return findConflict(candidate, existing) != nil
}
