package identity

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var secret = []byte("test-secret")

func sign(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(sub, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "smc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTVerifier(t *testing.T) {
	v := NewHMACVerifier(secret, "smc", "")
	defer v.Close()

	expired := validClaims("alice", "")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := validClaims("alice", "")
	wrongIssuer.Issuer = "other"

	tests := []struct {
		name    string
		header  string
		want    domain.Caller
		wantErr error
	}{
		{"user", "Bearer " + sign(t, validClaims("alice", ""), secret), domain.Caller{ID: "alice", Role: domain.RoleUser}, nil},
		{"admin", "bearer " + sign(t, validClaims("root", "admin"), secret), domain.Caller{ID: "root", Role: domain.RoleAdmin}, nil},
		{"missing", "", domain.Caller{}, ErrMissingCredentials},
		{"basic scheme", "Basic abc", domain.Caller{}, ErrMissingCredentials},
		{"bad signature", "Bearer " + sign(t, validClaims("alice", ""), []byte("other")), domain.Caller{}, ErrInvalidToken},
		{"expired", "Bearer " + sign(t, expired, secret), domain.Caller{}, ErrInvalidToken},
		{"wrong issuer", "Bearer " + sign(t, wrongIssuer, secret), domain.Caller{}, ErrInvalidToken},
		{"no subject", "Bearer " + sign(t, validClaims("", ""), secret), domain.Caller{}, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set(HeaderAuthorization, tt.header)
			}

			got, err := v.Verify(context.Background(), r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderVerifier(t *testing.T) {
	v := NewHeaderVerifier()

	r := httptest.NewRequest("GET", "/", nil)
	_, err := v.Verify(context.Background(), r)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	r.Header.Set(HeaderUserID, "alice")
	got, err := v.Verify(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{ID: "alice", Role: domain.RoleUser}, got)

	r.Header.Set(HeaderUserRole, "Admin")
	got, err = v.Verify(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
}

type stubIDTokens struct {
	token *auth.Token
	err   error
}

func (s stubIDTokens) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifier(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderAuthorization, "Bearer id-token")

	v := NewFirebaseVerifier(stubIDTokens{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{"role": "admin"}}})
	got, err := v.Verify(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{ID: "u1", Role: domain.RoleAdmin}, got)

	v = NewFirebaseVerifier(stubIDTokens{err: errors.New("token expired")})
	_, err = v.Verify(context.Background(), r)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
