package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sifrex/auth-api/internal/api/metrics"
	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/session"
)

// SessionCookie is the cookie browsers carry the access token in.
const SessionCookie = "sifrex_session"

const sessionContextKey = "auth_session"

// Session resolves the request's session exactly once and memoizes it in the
// Echo context. Resolution failure is not fatal here — an anonymous session
// is stored and the gates downstream decide what that means.
func Session(source session.Source, sourceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			sess, err := source.Resolve(c.Request().Context(), token)
			if err != nil {
				sess = domain.Anonymous
			} else {
				metrics.SessionsResolvedTotal.WithLabelValues(sourceName).Inc()
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the memoized session for the request. Requests that
// never passed the Session middleware read as anonymous.
func CurrentSession(c echo.Context) domain.Session {
	if sess, ok := c.Get(sessionContextKey).(domain.Session); ok {
		return sess
	}
	return domain.Anonymous
}

// extractToken takes the bearer token when present, else the session cookie.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Request().Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
