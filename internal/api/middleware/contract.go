package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Verifier определяет вызывающего по запросу (firebase, jwt или header)
type Verifier interface {
	Verify(ctx context.Context, r *http.Request) (domain.Caller, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
