package ratings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	ratingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/rating"
	"github.com/m04kA/SMC-AppointmentService/internal/service/ratings/models"
)

// MaxResourceIDLength ограничение длины идентификатора ресурса
const MaxResourceIDLength = 128

// Service сервис оценок ресурсов
type Service struct {
	ratingRepo   RatingRepository
	cache        StatsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис оценок; cache может быть nil
func NewService(ratingRepo RatingRepository, cache StatsCache, logger Logger) *Service {
	return &Service{
		ratingRepo:   ratingRepo,
		cache:        cache,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Rate сохраняет оценку пользователя; повторная оценка перезаписывает предыдущую
func (s *Service) Rate(ctx context.Context, req *models.RateRequest) (*models.StatsResponse, error) {
	resourceID, err := normalizeResourceID(req.ResourceID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRatingValue(req.Value) {
		s.logger.Warn("Rate: invalid value=%d from user=%s", req.Value, req.Caller.ID)
		return nil, ErrInvalidRating
	}

	s.logger.Info("Rate: user=%s rates resource=%s with %d", req.Caller.ID, resourceID, req.Value)

	err = s.ratingRepo.Upsert(ctx, &domain.Rating{
		ResourceID: resourceID,
		UserID:     req.Caller.ID,
		Value:      req.Value,
		UpdatedAt:  s.timeProvider.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Rate: repository error: %v", err)
		return nil, fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
	}

	stats, err := s.ratingRepo.GetStats(ctx, resourceID)
	if err != nil {
		s.logger.Error("Rate: repository error on stats: %v", err)
		return nil, fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
	}

	// Запись свежей статистики поверх кэша, а не удаление: иначе параллельный
	// GetStats может положить в кэш значение, прочитанное до Upsert.
	if s.cache != nil {
		if err := s.cache.Set(ctx, resourceID, stats); err != nil {
			s.logger.Warn("Rate: failed to cache stats for resource=%s: %v", resourceID, err)
			if err := s.cache.Invalidate(ctx, resourceID); err != nil {
				s.logger.Warn("Rate: failed to invalidate cached stats for resource=%s: %v", resourceID, err)
			}
		}
	}

	return models.FromDomainStats(resourceID, stats), nil
}

// GetUserRating возвращает оценку вызывающего или nil
func (s *Service) GetUserRating(ctx context.Context, resourceID string, caller domain.Caller) (*models.UserRatingResponse, error) {
	resourceID, err := normalizeResourceID(resourceID)
	if err != nil {
		return nil, err
	}

	resp := &models.UserRatingResponse{ResourceID: resourceID}

	rating, err := s.ratingRepo.GetUserRating(ctx, resourceID, caller.ID)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrRatingNotFound) {
			return resp, nil
		}
		s.logger.Error("GetUserRating: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetUserRating - repository error: %v", ErrInternal, err)
	}

	value := rating.Value
	resp.Value = &value
	return resp, nil
}

// GetStats возвращает {avg, count}; кэш читается первым, при его недоступности идём в базу
func (s *Service) GetStats(ctx context.Context, resourceID string) (*models.StatsResponse, error) {
	resourceID, err := normalizeResourceID(resourceID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, resourceID)
		if err != nil {
			s.logger.Warn("GetStats: cache unavailable, falling back to database: %v", err)
		} else if cached != nil {
			return models.FromDomainStats(resourceID, *cached), nil
		}
	}

	stats, err := s.ratingRepo.GetStats(ctx, resourceID)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, resourceID, stats); err != nil {
			s.logger.Warn("GetStats: failed to cache stats for resource=%s: %v", resourceID, err)
		}
	}

	return models.FromDomainStats(resourceID, stats), nil
}

func normalizeResourceID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}
	if len(id) > MaxResourceIDLength {
		return "", fmt.Errorf("%w: resourceId longer than %d", ErrInvalidInput, MaxResourceIDLength)
	}
	return id, nil
}
