package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusConfirmed is the only status produced by the booking flow.
	StatusConfirmed BookingStatus = "confirmed"
	// StatusCancelled is set outside this service; cancelled bookings never conflict.
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking is an appointment on the shared calendar.
// Start and End are UTC instants of a half-open interval [Start, End).
type Booking struct {
	ID          string
	OwnerID     string
	Start       time.Time
	End         time.Time
	Status      BookingStatus
	Title       string
	Notes       string
	ServiceType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed returns true if the booking occupies its interval
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Interval returns the occupied time range
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// DurationMinutes returns the booking length in whole minutes
func (b *Booking) DurationMinutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// OwnedBy returns true if userID created the booking
func (b *Booking) OwnedBy(userID string) bool {
	return b.OwnerID == userID
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	OwnerID *string        // Только бронирования пользователя (опционально)
	Status  *BookingStatus // Фильтр по статусу (опционально)
	From    *time.Time     // Бронирования, заканчивающиеся после From (опционально)
	To      *time.Time     // Бронирования, начинающиеся до To (опционально)
}
