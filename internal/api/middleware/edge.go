package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// strippedHeaders are inbound headers abused by a known middleware-forgery
// class; they must never reach a handler.
var strippedHeaders = []string{
	"X-Middleware-Subrequest",
	"X-Middleware-Prefetch",
}

// securityHeaders is the fixed response header set attached to every reply.
var securityHeaders = map[string]string{
	"X-Frame-Options":           "DENY",
	"X-Content-Type-Options":    "nosniff",
	"X-XSS-Protection":          "1; mode=block",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Permissions-Policy":        "geolocation=(), microphone=(), camera=()",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
}

// exemptPrefixes are API and operational paths outside locale routing.
var exemptPrefixes = []string{
	"/auth", "/users", "/health", "/metrics", "/swagger", "/unauthorized",
}

const localeContextKey = "locale"

// EdgeConfig parameterizes the per-request filter.
type EdgeConfig struct {
	DefaultLocale    string
	SupportedLocales []string
	// ProtectedPrefixes are de-localized page paths that require a session
	// token; PublicAuthPrefixes are the sign-in style pages a signed-in user
	// is bounced away from.
	ProtectedPrefixes  []string
	PublicAuthPrefixes []string
}

// DefaultEdgeConfig returns the platform's page-path classification.
func DefaultEdgeConfig(defaultLocale string, supported []string) EdgeConfig {
	return EdgeConfig{
		DefaultLocale:      defaultLocale,
		SupportedLocales:   supported,
		ProtectedPrefixes:  []string{"/dashboard", "/settings", "/admin", "/account"},
		PublicAuthPrefixes: []string{"/signin", "/signup", "/forgot-password"},
	}
}

// Edge is the stateless per-request filter: header hygiene, locale routing,
// optimistic auth redirects, and the security response headers. The auth
// redirects here are UX only; the authoritative checks are the session and
// role middlewares.
func Edge(cfg EdgeConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			for _, h := range strippedHeaders {
				req.Header.Del(h)
			}

			res := c.Response().Header()
			for k, v := range securityHeaders {
				res.Set(k, v)
			}

			path := req.URL.Path
			if isExempt(path) {
				return next(c)
			}

			locale, rest, ok := splitLocale(path, cfg.SupportedLocales)
			if !ok {
				detected := detectLocale(req.Header.Get("Accept-Language"), cfg)
				return c.Redirect(http.StatusTemporaryRedirect, "/"+detected+path)
			}
			c.Set(localeContextKey, locale)

			authed := carriesSessionToken(req)
			if !authed && hasAnyPrefix(rest, cfg.ProtectedPrefixes) {
				return c.Redirect(http.StatusTemporaryRedirect, "/"+locale+"/signin")
			}
			if authed && hasAnyPrefix(rest, cfg.PublicAuthPrefixes) {
				return c.Redirect(http.StatusTemporaryRedirect, "/"+locale+"/dashboard")
			}

			return next(c)
		}
	}
}

// RequestLocale returns the locale the edge filter extracted from the path,
// or def when the request never went through locale routing.
func RequestLocale(c echo.Context, def string) string {
	if loc, ok := c.Get(localeContextKey).(string); ok && loc != "" {
		return loc
	}
	return def
}

func isExempt(path string) bool {
	if hasAnyPrefix(path, exemptPrefixes) {
		return true
	}
	// Asset paths (anything with a file extension) skip locale routing.
	if i := strings.LastIndexByte(path, '/'); i >= 0 && strings.Contains(path[i:], ".") {
		return true
	}
	return false
}

// splitLocale returns the leading locale segment and the remainder of the
// path when the segment is a supported two-letter code.
func splitLocale(path string, supported []string) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, remainder, _ := strings.Cut(trimmed, "/")
	for _, loc := range supported {
		if seg == loc {
			return loc, "/" + remainder, true
		}
	}
	return "", path, false
}

// detectLocale picks the first supported language from Accept-Language,
// falling back to the default. Quality factors are ignored: order wins.
func detectLocale(acceptLanguage string, cfg EdgeConfig) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.TrimSpace(part)
		if i := strings.IndexAny(lang, ";-"); i >= 0 {
			lang = lang[:i]
		}
		for _, loc := range cfg.SupportedLocales {
			if strings.EqualFold(lang, loc) {
				return loc
			}
		}
	}
	return cfg.DefaultLocale
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// carriesSessionToken reports token presence only. It validates nothing.
func carriesSessionToken(req *http.Request) bool {
	if req.Header.Get("Authorization") != "" {
		return true
	}
	if cookie, err := req.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return true
	}
	return false
}
