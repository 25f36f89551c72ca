package middleware

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// AccessLog пишет строку на каждый запрос и перехватывает панику обработчика
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic: %s %s request_id=%s: %v", r.Method, r.URL.Path, GetRequestID(r.Context()), p)
					handlers.RespondInternalError(rec)
				}

				msg := "%s %s status=%d bytes=%d duration=%s request_id=%s"
				args := []interface{}{r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start), GetRequestID(r.Context())}
				if rec.status >= http.StatusInternalServerError {
					logger.Error(msg, args...)
				} else {
					logger.Info(msg, args...)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
