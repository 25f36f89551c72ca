package domain

// Booking duration bounds, inclusive
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 180
)

// Defaults for optional booking fields
const (
	DefaultTitle       = "Appointment"
	DefaultNotes       = ""
	DefaultServiceType = "general"
)

// Availability view defaults
const (
	DefaultSlotDurationMinutes = 30
	DefaultSlotStepMinutes     = 30
)

// Field limits
const (
	MaxTitleLength       = 200
	MaxNotesLength       = 2000
	MaxServiceTypeLength = 100
)

// Rating bounds, inclusive
const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
