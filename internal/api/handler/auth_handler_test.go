package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sifrex/auth-api/internal/api/middleware"
	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(email, name, password string) (*domain.User, error)
	loginFn    func(email, password string) (*domain.TokenPair, *domain.User, error)
	refreshFn  func(token string) (*domain.TokenPair, error)
	oauthFn    func(provider, accountID, email, name string) (*domain.TokenPair, *domain.User, error)
}

func (s *stubAuthService) Register(_ context.Context, email, name, password string, _ ports.RequestMeta) (*domain.User, error) {
	return s.registerFn(email, name, password)
}

func (s *stubAuthService) Login(_ context.Context, email, password string, _ ports.RequestMeta) (*domain.TokenPair, *domain.User, error) {
	return s.loginFn(email, password)
}

func (s *stubAuthService) Refresh(_ context.Context, token string) (*domain.TokenPair, error) {
	return s.refreshFn(token)
}

func (s *stubAuthService) LoginWithProvider(_ context.Context, provider, accountID, email, name string, _ ports.RequestMeta) (*domain.TokenPair, *domain.User, error) {
	return s.oauthFn(provider, accountID, email, name)
}

func jsonContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(email, name, password string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email, Name: name, Role: domain.RoleBasic}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","name":"Alice","password":"password123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"password123"}`},
		{"bad email", `{"email":"not-an-email","password":"password123"}`},
		{"short password", `{"email":"a@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := jsonContext(t, http.MethodPost, "/auth/register", tc.body)
			err := h.Register(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	pair := &domain.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt", ExpiresIn: 1800}
	svc := &stubAuthService{
		loginFn: func(email, password string) (*domain.TokenPair, *domain.User, error) {
			return pair, &domain.User{ID: "u-1", Email: email, Role: domain.RolePro}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/auth/login",
		`{"email":"bob@example.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie", middleware.SessionCookie)
	}
	if cookie.Value != "access-jwt" || !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.AccessToken != "access-jwt" || resp.RefreshToken != "refresh-jwt" || resp.ExpiresIn != 1800 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_ErrorPassesThrough(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(string, string) (*domain.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/auth/login",
		`{"email":"bob@example.com","password":"wrong-password"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to pass through, got %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			t.Fatalf("failed login must not set a session cookie")
		}
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(token string) (*domain.TokenPair, error) {
			if token != "refresh-jwt" {
				return nil, domain.ErrUnauthenticated
			}
			return &domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 1800}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh-jwt"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.AccessToken != "new-access" || resp.User != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, _ = jsonContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"stale"}`)
	if err := h.Refresh(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_OAuth(t *testing.T) {
	var gotProvider string
	svc := &stubAuthService{
		oauthFn: func(provider, accountID, email, name string) (*domain.TokenPair, *domain.User, error) {
			gotProvider = provider
			return &domain.TokenPair{AccessToken: "access-jwt"}, &domain.User{ID: "u-1", Email: email}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(t, http.MethodPost, "/auth/oauth/github",
		`{"provider_account_id":"gh-42","email":"iris@example.com","name":"Iris"}`)
	c.SetParamNames("provider")
	c.SetParamValues("github")

	if err := h.OAuth(c); err != nil {
		t.Fatalf("OAuth returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotProvider != "github" {
		t.Fatalf("expected provider github, got %q", gotProvider)
	}
}

func TestAuthHandler_Session_AnonymousByDefault(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := jsonContext(t, http.MethodGet, "/auth/session", "")

	if err := h.Session(c); err != nil {
		t.Fatalf("Session returned error: %v", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if sess.Authenticated {
		t.Fatalf("expected anonymous session, got %+v", sess)
	}
}
