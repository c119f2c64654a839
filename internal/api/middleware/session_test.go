package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func mintAccessToken(t *testing.T) string {
	t.Helper()
	issuer := session.NewIssuer(testSecret, time.Hour, 24*time.Hour)
	pair, err := issuer.Pair(&domain.User{ID: "u-1", Email: "alice@example.com", Role: domain.RolePro})
	if err != nil {
		t.Fatalf("Pair returned error: %v", err)
	}
	return pair.AccessToken
}

func sessionTestServer() (*echo.Echo, *domain.Session) {
	e := echo.New()
	var seen domain.Session
	e.Use(Session(session.NewTokenSource(testSecret), "token"))
	e.GET("/probe", func(c echo.Context) error {
		seen = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	})
	return e, &seen
}

func TestSession_BearerHeader(t *testing.T) {
	e, seen := sessionTestServer()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+mintAccessToken(t))
	e.ServeHTTP(httptest.NewRecorder(), req)

	if !seen.Authenticated || seen.SubjectID != "u-1" || seen.Role != domain.RolePro {
		t.Fatalf("unexpected session: %+v", *seen)
	}
}

func TestSession_Cookie(t *testing.T) {
	e, seen := sessionTestServer()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: mintAccessToken(t)})
	e.ServeHTTP(httptest.NewRecorder(), req)

	if !seen.Authenticated || seen.Email != "alice@example.com" {
		t.Fatalf("unexpected session: %+v", *seen)
	}
}

func TestSession_MalformedAuthorizationIgnoresCookie(t *testing.T) {
	e, seen := sessionTestServer()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: mintAccessToken(t)})
	e.ServeHTTP(httptest.NewRecorder(), req)

	// A present but non-bearer Authorization header wins over the cookie and
	// yields no token.
	if seen.Authenticated {
		t.Fatalf("expected anonymous session, got %+v", *seen)
	}
}

func TestSession_InvalidTokenIsAnonymous(t *testing.T) {
	e, seen := sessionTestServer()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("resolution failure must not abort the request, got %d", rec.Code)
	}
	if seen.Authenticated {
		t.Fatalf("expected anonymous session, got %+v", *seen)
	}
}

func TestSession_NoToken(t *testing.T) {
	e, seen := sessionTestServer()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	if seen.Authenticated {
		t.Fatalf("expected anonymous session, got %+v", *seen)
	}
}

func TestCurrentSession_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if sess := CurrentSession(c); sess.Authenticated {
		t.Fatalf("expected anonymous session, got %+v", sess)
	}
}

func TestSession_StaticSourceIgnoresToken(t *testing.T) {
	e := echo.New()
	var seen domain.Session
	e.Use(Session(session.NewStaticSource("dev-user", "dev@localhost", domain.RoleAdmin), "static"))
	e.GET("/probe", func(c echo.Context) error {
		seen = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	if !seen.Authenticated || seen.SubjectID != "dev-user" || seen.Role != domain.RoleAdmin {
		t.Fatalf("unexpected synthetic session: %+v", seen)
	}
}
