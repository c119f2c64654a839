package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func hostsTestServer(allowed []string) *echo.Echo {
	e := echo.New()
	e.Use(TrustedHosts(allowed))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func serveHost(e *echo.Echo, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTrustedHosts_Allowed(t *testing.T) {
	e := hostsTestServer([]string{"localhost", "127.0.0.1", "api.sifrex.io"})
	for _, host := range []string{"localhost", "localhost:8080", "127.0.0.1", "API.SIFREX.IO"} {
		if rec := serveHost(e, host); rec.Code != http.StatusOK {
			t.Errorf("host %q: expected 200, got %d", host, rec.Code)
		}
	}
}

func TestTrustedHosts_Rejected(t *testing.T) {
	e := hostsTestServer([]string{"localhost", "api.sifrex.io"})
	for _, host := range []string{"evil.example.com", "sifrex.io.evil.com", "notlocalhost"} {
		if rec := serveHost(e, host); rec.Code != http.StatusBadRequest {
			t.Errorf("host %q: expected 400, got %d", host, rec.Code)
		}
	}
}

func TestTrustedHosts_WildcardSubdomain(t *testing.T) {
	e := hostsTestServer([]string{"*.sifrex.io"})
	if rec := serveHost(e, "api.sifrex.io"); rec.Code != http.StatusOK {
		t.Fatalf("subdomain should match, got %d", rec.Code)
	}
	if rec := serveHost(e, "sifrex.io"); rec.Code != http.StatusBadRequest {
		t.Fatalf("apex must not match a *. pattern, got %d", rec.Code)
	}
}

func TestTrustedHosts_OpenConfigurations(t *testing.T) {
	for _, allowed := range [][]string{nil, {"*"}} {
		e := hostsTestServer(allowed)
		if rec := serveHost(e, "anything.example.com"); rec.Code != http.StatusOK {
			t.Errorf("allow-list %v must not filter, got %d", allowed, rec.Code)
		}
	}
}
