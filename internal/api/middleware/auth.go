package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgSignInRequired = "Sign in required."
	msgAdminOnly      = "Admin role required."
)

type callerKey struct{}

// WithCaller кладёт проверенного вызывающего в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller возвращает вызывающего из контекста (проставляет Auth)
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok && caller.ID != ""
}

// GetUserID возвращает ID вызывающего из контекста
func GetUserID(ctx context.Context) (string, bool) {
	caller, ok := GetCaller(ctx)
	return caller.ID, ok
}

// Auth проверяет личность вызывающего; без неё отвечает 401 unauthenticated
func Auth(verifier Verifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := verifier.Verify(r.Context(), r)
			if err != nil {
				logger.Warn("Auth: %s %s rejected: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgSignInRequired)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireAdmin пропускает только вызывающих с ролью admin; ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCaller(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgSignInRequired)
			return
		}
		if !caller.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
