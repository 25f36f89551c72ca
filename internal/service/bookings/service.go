package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// MaxRangeDays максимальная длина периода для ListRange
const MaxRangeDays = 92

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Владелец видит своё бронирование, admin видит любое
func (s *Service) GetByID(ctx context.Context, id string, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, caller.ID)

	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !caller.CanView(booking) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", caller.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования вызывающего, новые сначала
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.Caller.ID, ptr.Deref(req.Status, "any"))

	filter := domain.BookingsFilter{OwnerID: ptr.Ptr(req.Caller.ID)}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.Caller.ID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.Caller.ID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	// Репозиторий сортирует по началу; пользователю показываем новые сначала
	reversed := make([]*domain.Booking, len(bookings))
	for i, b := range bookings {
		reversed[len(bookings)-1-i] = b
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.Caller.ID)
	return models.FromDomainBookingList(reversed), nil
}

// ListRange получает подтверждённые бронирования, пересекающие [From, To)
// Доступно только admin
func (s *Service) ListRange(ctx context.Context, req *models.ListRangeRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListRange: user=%s, period=%s to %s",
		req.Caller.ID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	if !req.Caller.IsAdmin() {
		s.logger.Warn("ListRange: user=%s is not admin", req.Caller.ID)
		return nil, ErrAccessDenied
	}

	if !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidTimeRange)
	}
	if req.To.Sub(req.From) > MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period longer than %d days", ErrInvalidTimeRange, MaxRangeDays)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		Status: ptr.Ptr(domain.StatusConfirmed),
		From:   ptr.Ptr(req.From.UTC()),
		To:     ptr.Ptr(req.To.UTC()),
	})
	if err != nil {
		s.logger.Error("ListRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}
