package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ValidateTimeRange переводит локальные время начала и конца в UTC и проверяет интервал.
// Чистая функция: не обращается к хранилищу.
func ValidateTimeRange(startLocal, endLocal string, loc *time.Location) (domain.Interval, error) {
	start, err := domain.ParseLocal(startLocal, loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}

	end, err := domain.ParseLocal(endLocal, loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}

	interval := domain.Interval{Start: start, End: end}
	if !interval.Valid() {
		return domain.Interval{}, fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}

	minutes := interval.Duration().Minutes()
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return domain.Interval{}, fmt.Errorf("%w: got %.0f", ErrDurationOutOfRange, minutes)
	}

	return interval, nil
}

// normalizeDetails подставляет значения по умолчанию и проверяет длину полей
func normalizeDetails(req *Request) (title, notes, serviceType string, err error) {
	title = strings.TrimSpace(req.Title)
	if title == "" {
		title = domain.DefaultTitle
	}
	notes = req.Notes
	if strings.TrimSpace(notes) == "" {
		notes = domain.DefaultNotes
	}
	serviceType = strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = domain.DefaultServiceType
	}

	switch {
	case utf8.RuneCountInString(title) > domain.MaxTitleLength:
		err = fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	case utf8.RuneCountInString(notes) > domain.MaxNotesLength:
		err = fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	case utf8.RuneCountInString(serviceType) > domain.MaxServiceTypeLength:
		err = fmt.Errorf("%w: serviceType longer than %d characters", ErrInvalidInput, domain.MaxServiceTypeLength)
	}
	return title, notes, serviceType, err
}
