package rating

import "errors"

var (
	// ErrRatingNotFound возвращается, когда пользователь ещё не оценивал ресурс
	ErrRatingNotFound = errors.New("rating.repository: rating not found")

	ErrBuildQuery = errors.New("rating.repository: failed to build query")
	ErrExecQuery  = errors.New("rating.repository: failed to execute query")
	ErrScanRow    = errors.New("rating.repository: failed to scan row")
)
