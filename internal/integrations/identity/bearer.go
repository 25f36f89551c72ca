package identity

import (
	"net/http"
	"strings"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-User-ID"
	HeaderUserRole      = "X-User-Role"

	// RoleClaim имя claim с ролью и в Firebase, и в JWT
	RoleClaim = "role"
)

// bearerToken достаёт токен из "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get(HeaderAuthorization))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
