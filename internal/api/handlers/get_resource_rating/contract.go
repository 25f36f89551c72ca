package get_resource_rating

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

type RatingService interface {
	GetStats(ctx context.Context, resourceID string) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
