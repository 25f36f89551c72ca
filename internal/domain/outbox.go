package domain

import "time"

// Event types published through the outbox
const (
	EventBookingCreated = "booking.created"
)

const AggregateBooking = "booking"

// OutboxEvent is a domain event written in the same transaction as the state change.
type OutboxEvent struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// BookingCreatedPayload is the JSON body of a booking.created event.
type BookingCreatedPayload struct {
	BookingID   string    `json:"bookingId"`
	OwnerID     string    `json:"ownerId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	ServiceType string    `json:"serviceType"`
	CreatedAt   time.Time `json:"createdAt"`
}
