package rate_resource

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

type RatingService interface {
	Rate(ctx context.Context, req *models.RateRequest) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
