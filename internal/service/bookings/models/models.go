package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Caller domain.Caller
	Status *string // Фильтр по статусу (опционально)
}

// ListRangeRequest запрос на получение подтверждённых бронирований за период (только admin)
type ListRangeRequest struct {
	Caller domain.Caller
	From   time.Time
	To     time.Time
}

// Response модели

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	ServiceType string    `json:"serviceType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Start:       b.Start.UTC(),
		End:         b.End.UTC(),
		Status:      string(b.Status),
		Title:       b.Title,
		Notes:       b.Notes,
		ServiceType: b.ServiceType,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	list := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: list, Total: len(list)}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
