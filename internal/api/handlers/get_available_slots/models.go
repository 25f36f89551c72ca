package get_available_slots

import (
	"strconv"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	Timezone        string         `json:"timezone"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse HTTP response model для слота
type SlotResponse struct {
	Start      string `json:"start"`      // UTC, RFC 3339
	End        string `json:"end"`        // UTC, RFC 3339
	StartLocal string `json:"startLocal"` // HH:MM в часовом поясе бизнеса
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(date, durationStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{Date: date}
	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:      s.Start.UTC().Format(time.RFC3339),
			End:        s.End.UTC().Format(time.RFC3339),
			StartLocal: s.StartLocal,
		})
	}
	return &AvailableSlotsResponse{
		Date:            resp.Date,
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
