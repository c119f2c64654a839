package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sifrex/auth-api/internal/api/metrics"
	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/guard"
)

// RequireRole gates a route group on a minimum role. The guard returns a
// Decision; only this middleware turns a denial into an actual redirect.
func RequireRole(g *guard.Guard, min domain.Role, defaultLocale string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			decision := g.Authorize(sess, min, RequestLocale(c, defaultLocale))
			if !decision.Allowed {
				metrics.RoleDenialsTotal.WithLabelValues(min.String()).Inc()
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}
			return next(c)
		}
	}
}
