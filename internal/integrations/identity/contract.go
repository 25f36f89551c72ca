package identity

import (
	"context"
	"net/http"

	"firebase.google.com/go/auth"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Verifier определяет вызывающего по HTTP-запросу
type Verifier interface {
	Verify(ctx context.Context, r *http.Request) (domain.Caller, error)
}

// IDTokenVerifier часть *auth.Client Firebase Admin SDK
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}
