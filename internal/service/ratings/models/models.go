package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// RateRequest запрос на оценку ресурса
type RateRequest struct {
	Caller     domain.Caller
	ResourceID string
	Value      int
}

// UserRatingResponse оценка пользователя (nil, если не оценивал)
type UserRatingResponse struct {
	ResourceID string `json:"resourceId"`
	Value      *int   `json:"value"`
}

// StatsResponse агрегаты оценок ресурса
type StatsResponse struct {
	ResourceID string  `json:"resourceId"`
	Avg        float64 `json:"avg"`
	Count      int     `json:"count"`
}

func FromDomainStats(resourceID string, s domain.RatingStats) *StatsResponse {
	return &StatsResponse{ResourceID: resourceID, Avg: s.Avg, Count: s.Count}
}
