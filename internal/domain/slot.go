package domain

import "time"

// BusinessHours describes when bookings are offered on a business day.
// OpenMinute and CloseMinute count minutes since local midnight.
type BusinessHours struct {
	OpenMinute         int
	CloseMinute        int
	SlotStepMinutes    int
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = unlimited
	ClosedWeekdays     []time.Weekday
}

// IsClosed returns true if no slots are offered on weekday
func (h BusinessHours) IsClosed(weekday time.Weekday) bool {
	for _, d := range h.ClosedWeekdays {
		if d == weekday {
			return true
		}
	}
	return h.CloseMinute <= h.OpenMinute
}
