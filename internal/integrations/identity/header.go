package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// HeaderVerifier доверяет заголовкам X-User-ID / X-User-Role, которые
// проставляет API gateway перед сервисом
type HeaderVerifier struct{}

func NewHeaderVerifier() *HeaderVerifier {
	return &HeaderVerifier{}
}

func (v *HeaderVerifier) Verify(_ context.Context, r *http.Request) (domain.Caller, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return domain.Caller{}, ErrMissingCredentials
	}
	return domain.Caller{
		ID:   id,
		Role: domain.ParseRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))),
	}, nil
}
