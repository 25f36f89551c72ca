package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func preflight(requestHeaders string) *httptest.ResponseRecorder {
	h := newCORS([]string{"https://app.example.com"}).Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings", nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", requestHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestCORS_AllowsBearerToken(t *testing.T) {
	rec := preflight("Authorization, Content-Type")
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RejectsIdentityHeadersFromBrowser(t *testing.T) {
	for _, header := range []string{"X-User-ID", "X-User-Role"} {
		rec := preflight(header)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), header)
	}
}
