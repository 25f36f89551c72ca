package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Время задаётся в часовом поясе бизнеса: "2024-06-01T09:00"
type CreateBookingRequest struct {
	StartLocalISO string `json:"startLocalISO" validate:"required"`
	EndLocalISO   string `json:"endLocalISO" validate:"required"`
	Title         string `json:"title,omitempty"`
	Notes         string `json:"notes,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Notes       string `json:"notes"`
	ServiceType string `json:"serviceType"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateBookingResponse тело ответа 201
type CreateBookingResponse struct {
	OK      bool             `json:"ok"`
	ID      string           `json:"id"`
	Booking *BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(ownerID string) *createBooking.Request {
	return &createBooking.Request{
		OwnerID:     ownerID,
		StartLocal:  r.StartLocalISO,
		EndLocal:    r.EndLocalISO,
		Title:       r.Title,
		Notes:       r.Notes,
		ServiceType: r.ServiceType,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		OK: true,
		ID: resp.ID,
		Booking: &BookingResponse{
			ID:          resp.ID,
			OwnerID:     resp.OwnerID,
			Start:       resp.Start.UTC().Format(time.RFC3339),
			End:         resp.End.UTC().Format(time.RFC3339),
			Status:      resp.Status,
			Title:       resp.Title,
			Notes:       resp.Notes,
			ServiceType: resp.ServiceType,
			CreatedAt:   resp.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   resp.UpdatedAt.UTC().Format(time.RFC3339),
		},
	}
}
