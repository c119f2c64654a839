package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sifrex/auth-api/internal/core/guard"
	"github.com/sifrex/auth-api/internal/core/session"
)

func testRouter(trustedHosts []string) *echo.Echo {
	return NewRouter(Deps{
		Log:              zerolog.Nop(),
		Source:           session.NewTokenSource("0123456789abcdef0123456789abcdef"),
		SourceName:       "token",
		Gate:             guard.New(zerolog.Nop()),
		DefaultLocale:    "en",
		SupportedLocales: []string{"en", "es", "fr", "de"},
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
		TrustedHosts:     trustedHosts,
		PromRegisterer:   prometheus.NewRegistry(),
	})
}

// The browser frontend calls the API cross-origin; the preflight must answer
// with the echoed origin for allow-listed callers.
func TestRouter_CORSPreflight(t *testing.T) {
	e := testRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:3000" {
		t.Fatalf("expected allow-origin echo, got %q", got)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowCredentials) != "true" {
		t.Fatalf("expected allow-credentials for the cookie-carrying frontend")
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); got == "" {
		t.Fatalf("expected allow-methods on the preflight")
	}
}

func TestRouter_CORSRejectsForeignOrigin(t *testing.T) {
	e := testRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("foreign origin must not be allowed, got %q", got)
	}
}

func TestRouter_TrustedHostFilter(t *testing.T) {
	e := testRouter([]string{"api.sifrex.io"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "evil.example.com"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign host must be rejected, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "api.sifrex.io"
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("allow-listed host must pass, got %d", rec.Code)
	}
}
