package get_business_hours

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BusinessHoursResponse рабочие часы, по которым строится витрина слотов
type BusinessHoursResponse struct {
	Timezone               string `json:"timezone"`
	Open                   string `json:"open"`  // HH:MM
	Close                  string `json:"close"` // HH:MM
	SlotStepMinutes        int    `json:"slotStepMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	ClosedWeekdays         []int  `json:"closedWeekdays"` // 0 = воскресенье
	MinDurationMinutes     int    `json:"minDurationMinutes"`
	MaxDurationMinutes     int    `json:"maxDurationMinutes"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
}

// FromDomain конвертирует domain.BusinessHours в HTTP response
func FromDomain(hours domain.BusinessHours, loc *time.Location) *BusinessHoursResponse {
	closed := make([]int, 0, len(hours.ClosedWeekdays))
	for _, d := range hours.ClosedWeekdays {
		closed = append(closed, int(d))
	}

	return &BusinessHoursResponse{
		Timezone:               loc.String(),
		Open:                   clock(hours.OpenMinute),
		Close:                  clock(hours.CloseMinute),
		SlotStepMinutes:        hours.SlotStepMinutes,
		MinNoticeMinutes:       hours.MinNoticeMinutes,
		AdvanceBookingDays:     hours.AdvanceBookingDays,
		ClosedWeekdays:         closed,
		MinDurationMinutes:     domain.MinDurationMinutes,
		MaxDurationMinutes:     domain.MaxDurationMinutes,
		DefaultDurationMinutes: domain.DefaultSlotDurationMinutes,
	}
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
