package main

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/identity"
)

// newCORS разрешает браузеру только bearer-токен.
// X-User-ID / X-User-Role ставит шлюз, из браузера они не принимаются.
func newCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{identity.HeaderAuthorization, "Content-Type"},
	})
}
