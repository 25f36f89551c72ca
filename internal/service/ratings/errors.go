package ratings

import "errors"

var (
	// ErrInvalidRating возвращается, когда оценка не целое число 1..5
	ErrInvalidRating = errors.New("ratings: rating must be an integer between 1 and 5")

	// ErrInvalidInput возвращается при некорректном resourceId
	ErrInvalidInput = errors.New("ratings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ratings: internal error")
)
