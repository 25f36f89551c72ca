package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Claims claims токена: sub = ID вызывающего
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет bearer JWT по HMAC-секрету или по JWKS
type JWTVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
	close   func()
}

func parserOptions(methods []string, issuer, audience string) []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return opts
}

// NewHMACVerifier проверка подписи HS256 общим секретом
func NewHMACVerifier(secret []byte, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{
		keyfunc: func(*jwt.Token) (interface{}, error) { return secret, nil },
		parser:  jwt.NewParser(parserOptions([]string{"HS256"}, issuer, audience)...),
		close:   func() {},
	}
}

// NewJWKSVerifier загружает ключи по JWKS URL и обновляет их в фоне
// Close останавливает фоновое обновление
func NewJWKSVerifier(ctx context.Context, jwksURL, issuer, audience string) (*JWTVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: failed to load JWKS from %s: %w", jwksURL, err)
	}

	return &JWTVerifier{
		keyfunc: jwks.Keyfunc,
		parser:  jwt.NewParser(parserOptions([]string{"RS256", "ES256"}, issuer, audience)...),
		close:   jwks.EndBackground,
	}, nil
}

func (v *JWTVerifier) Verify(_ context.Context, r *http.Request) (domain.Caller, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return domain.Caller{}, ErrMissingCredentials
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(raw, claims, v.keyfunc)
	if err != nil || !token.Valid {
		return domain.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return domain.Caller{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	return domain.Caller{ID: claims.Subject, Role: domain.ParseRole(claims.Role)}, nil
}

func (v *JWTVerifier) Close() {
	v.close()
}
