package create_booking

import "errors"

var (
	// ErrUnauthenticated возвращается, когда личность вызывающего не установлена
	ErrUnauthenticated = errors.New("create_booking: sign in required")

	// ErrInvalidTimeRange возвращается, когда время не разбирается, попадает в переход на летнее время или start >= end
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных описательных полях
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDurationOutOfRange возвращается, когда длительность вне [15, 180] минут
	ErrDurationOutOfRange = errors.New("create_booking: duration must be 15-180 minutes")

	// ErrSlotAlreadyBooked возвращается при пересечении с подтверждённым бронированием
	ErrSlotAlreadyBooked = errors.New("create_booking: time slot is already booked")

	// ErrRateLimited возвращается, когда пользователь превысил лимит попыток
	ErrRateLimited = errors.New("create_booking: too many booking attempts")

	// ErrUnavailable возвращается при временной недоступности хранилища, запрос можно повторить
	ErrUnavailable = errors.New("create_booking: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
