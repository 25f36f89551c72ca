package get_my_rating

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

type RatingService interface {
	GetUserRating(ctx context.Context, resourceID string, caller domain.Caller) (*models.UserRatingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
