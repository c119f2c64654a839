package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/guard"
)

func rbacTestServer(min domain.Role, sess domain.Session) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	})
	e.GET("/gated", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireRole(guard.New(zerolog.Nop()), min, "en"))
	return e
}

func TestRequireRole_Allowed(t *testing.T) {
	sess := domain.Session{Authenticated: true, SubjectID: "u-1", Role: domain.RoleAdmin}
	e := rbacTestServer(domain.RolePremium, sess)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gated", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_AnonymousRedirectsToSignin(t *testing.T) {
	e := rbacTestServer(domain.RoleBasic, domain.Anonymous)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gated", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/en/signin" {
		t.Fatalf("expected /en/signin, got %q", loc)
	}
}

func TestRequireRole_InsufficientRedirectsUnauthorized(t *testing.T) {
	sess := domain.Session{Authenticated: true, SubjectID: "u-1", Role: domain.RoleBasic}
	e := rbacTestServer(domain.RoleAdmin, sess)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gated", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != guard.UnauthorizedPath {
		t.Fatalf("expected %s, got %q", guard.UnauthorizedPath, loc)
	}
}
