package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedHosts rejects requests whose Host header is outside the allow-list.
// An empty list or a "*" entry disables filtering. Entries of the form
// "*.example.com" match any subdomain; ports are ignored.
func TrustedHosts(allowed []string) echo.MiddlewareFunc {
	open := len(allowed) == 0
	for _, h := range allowed {
		if h == "*" {
			open = true
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if open {
				return next(c)
			}
			if hostAllowed(c.Request().Host, allowed) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusBadRequest, "invalid host header")
		}
	}
}

func hostAllowed(raw string, allowed []string) bool {
	host := raw
	if h, _, err := net.SplitHostPort(raw); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	for _, a := range allowed {
		a = strings.ToLower(a)
		if host == a {
			return true
		}
		if suffix, ok := strings.CutPrefix(a, "*."); ok && strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
