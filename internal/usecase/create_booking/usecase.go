package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// DefaultTxTimeout верхняя граница на всю транзакцию бронирования
const DefaultTxTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	outboxRepo   OutboxRepository
	txManager    TransactionManager
	limiter      RateLimiter
	timeProvider TimeProvider
	metrics      Metrics
	location     *time.Location
	txTimeout    time.Duration
	logger       Logger
}

type Option func(*UseCase)

// WithTimeProvider подменяет часы (для тестов)
func WithTimeProvider(p TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = p }
}

// WithRateLimiter включает ограничение частоты бронирований на пользователя
func WithRateLimiter(l RateLimiter) Option {
	return func(uc *UseCase) { uc.limiter = l }
}

func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithTxTimeout задаёт таймаут транзакции
func WithTxTimeout(d time.Duration) Option {
	return func(uc *UseCase) {
		if d > 0 {
			uc.txTimeout = d
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:  bookingRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      noopMetrics{},
		location:     location,
		txTimeout:    DefaultTxTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции,
// поэтому из двух конкурентных пересекающихся запросов подтверждается только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Вызывающий должен быть аутентифицирован
	if req.OwnerID == "" {
		return nil, ErrUnauthenticated
	}

	uc.logger.Info("CreateBooking: owner=%s, start=%q, end=%q", req.OwnerID, req.StartLocal, req.EndLocal)

	// 2. Валидация до любого обращения к хранилищу
	interval, err := ValidateTimeRange(req.StartLocal, req.EndLocal, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking("invalid")
		return nil, err
	}

	title, notes, serviceType, err := normalizeDetails(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking("invalid")
		return nil, err
	}

	// 3. Лимит попыток; при недоступном лимитере пропускаем запрос
	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, "booking:"+req.OwnerID)
		if err != nil {
			uc.logger.Warn("CreateBooking: rate limiter unavailable, letting request through: %v", err)
		} else if !allowed {
			uc.logger.Warn("CreateBooking: owner=%s exceeded booking rate limit", req.OwnerID)
			uc.metrics.ObserveBooking("rate_limited")
			return nil, ErrRateLimited
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	var result *domain.Booking

	// 4. Чтение, проверка и запись в одной транзакции
	err = uc.txManager.DoSerializable(txCtx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.ListConfirmedStartingBefore(txCtx, interval.End)
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		if conflict := findConflict(interval, existing); conflict != nil {
			uc.logger.Warn("CreateBooking: [%s, %s) overlaps booking id=%s",
				interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339), conflict.ID)
			return ErrSlotAlreadyBooked
		}

		now := uc.timeProvider.Now().UTC()
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			OwnerID:     req.OwnerID,
			Start:       interval.Start,
			End:         interval.End,
			Status:      domain.StatusConfirmed,
			Title:       title,
			Notes:       notes,
			ServiceType: serviceType,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		event, err := newBookingCreatedEvent(created, now)
		if err != nil {
			return fmt.Errorf("%w: failed to build event: %w", ErrInternal, err)
		}
		if err := uc.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to write outbox event: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.translateError(txCtx, err)
	}

	uc.metrics.ObserveBooking("created")
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:          result.ID,
		OwnerID:     result.OwnerID,
		Start:       result.Start,
		End:         result.End,
		Status:      string(result.Status),
		Title:       result.Title,
		Notes:       result.Notes,
		ServiceType: result.ServiceType,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// translateError приводит ошибку транзакции к ошибкам usecase
func (uc *UseCase) translateError(txCtx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrSlotAlreadyBooked):
		uc.metrics.ObserveBooking("conflict")
		return ErrSlotAlreadyBooked
	case txmanager.IsExclusionViolation(err):
		// Сработал exclusion constraint: пересечение поймано базой
		uc.logger.Warn("CreateBooking: exclusion constraint rejected booking: %v", err)
		uc.metrics.ObserveBooking("conflict")
		return ErrSlotAlreadyBooked
	case txCtx.Err() != nil || txmanager.IsUnavailable(err):
		uc.logger.Warn("CreateBooking: storage unavailable: %v", err)
		uc.metrics.ObserveBooking("unavailable")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.metrics.ObserveBooking("error")
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func newBookingCreatedEvent(b *domain.Booking, now time.Time) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(domain.BookingCreatedPayload{
		BookingID:   b.ID,
		OwnerID:     b.OwnerID,
		Start:       b.Start,
		End:         b.End,
		ServiceType: b.ServiceType,
		CreatedAt:   b.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return &domain.OutboxEvent{
		EventID:       uuid.NewString(),
		AggregateType: domain.AggregateBooking,
		AggregateID:   b.ID,
		EventType:     domain.EventBookingCreated,
		Payload:       payload,
		CreatedAt:     now,
	}, nil
}
