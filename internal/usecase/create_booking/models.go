package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID     string // ID вызывающего (из auth middleware)
	StartLocal  string // Начало в часовом поясе бизнеса, например "2024-06-01T09:00"
	EndLocal    string // Конец в часовом поясе бизнеса
	Title       string // Пусто = "Appointment"
	Notes       string
	ServiceType string // Пусто = "general"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	OwnerID     string
	Start       time.Time // UTC
	End         time.Time // UTC
	Status      string
	Title       string
	Notes       string
	ServiceType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
