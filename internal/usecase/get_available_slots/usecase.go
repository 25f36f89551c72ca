package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	hours        domain.BusinessHours
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hours domain.BusinessHours,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		hours:        hours,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider возвращает копию use case с другими часами (для тестов)
func (uc *UseCase) WithTimeProvider(p TimeProvider) *UseCase {
	cp := *uc
	cp.timeProvider = p
	return &cp
}

// Execute выполняет use case получения доступных слотов.
// Чтение идёт без транзакции: результат лишь подсказка, окончательную
// проверку делает create_booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d", req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	day, duration, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateAdvance(day, now.In(uc.location), uc.hours.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	response := &Response{
		Date:            day.Format(domain.DateFormat),
		Timezone:        uc.location.String(),
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// 2. Кандидаты с учётом рабочих часов и минимального времени до начала
	candidates := generateCandidates(day, uc.hours, duration, now)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidates on %s", response.Date)
		return response, nil
	}

	// 3. Подтверждённые бронирования, пересекающие окно кандидатов
	window := domain.Interval{Start: candidates[0].Start, End: candidates[len(candidates)-1].End}
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		Status: ptr.Ptr(domain.StatusConfirmed),
		From:   ptr.Ptr(window.Start.UTC()),
		To:     ptr.Ptr(window.End.UTC()),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Отбрасываем кандидатов с пересечениями
	response.Slots = filterAvailable(candidates, bookings)

	uc.logger.Info("GetAvailableSlots: %d of %d candidates available on %s",
		len(response.Slots), len(candidates), response.Date)

	return response, nil
}
