package list_bookings

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

var errMissingRange = errors.New("from and to are required")

// ToServiceRequest формирует запрос к сервису из query параметров (RFC 3339)
func ToServiceRequest(caller domain.Caller, fromStr, toStr string) (*models.ListRangeRequest, error) {
	if fromStr == "" || toStr == "" {
		return nil, errMissingRange
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, err
	}

	return &models.ListRangeRequest{
		Caller: caller,
		From:   from.UTC(),
		To:     to.UTC(),
	}, nil
}
