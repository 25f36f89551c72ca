package identity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// FirebaseVerifier проверяет Firebase ID-токен; uid становится ID вызывающего,
// custom claim "role" задаёт роль (по умолчанию user)
type FirebaseVerifier struct {
	client IDTokenVerifier
}

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, r *http.Request) (domain.Caller, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return domain.Caller{}, ErrMissingCredentials
	}

	token, err := v.client.VerifyIDToken(ctx, raw)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.UID == "" {
		return domain.Caller{}, fmt.Errorf("%w: empty uid", ErrInvalidToken)
	}

	role, _ := token.Claims[RoleClaim].(string)
	return domain.Caller{ID: token.UID, Role: domain.ParseRole(role)}, nil
}
