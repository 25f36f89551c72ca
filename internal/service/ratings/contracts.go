package ratings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetUserRating(ctx context.Context, resourceID, userID string) (*domain.Rating, error)
	GetStats(ctx context.Context, resourceID string) (domain.RatingStats, error)
}

// StatsCache кэш агрегатов оценок
// Get возвращает (nil, nil) при промахе
type StatsCache interface {
	Get(ctx context.Context, resourceID string) (*domain.RatingStats, error)
	Set(ctx context.Context, resourceID string, stats domain.RatingStats) error
	Invalidate(ctx context.Context, resourceID string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
