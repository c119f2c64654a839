package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sifrex/auth-api/internal/api/handler"
	"github.com/sifrex/auth-api/internal/api/middleware"
	"github.com/sifrex/auth-api/internal/core/domain"
	"github.com/sifrex/auth-api/internal/core/guard"
	"github.com/sifrex/auth-api/internal/core/ports"
	"github.com/sifrex/auth-api/internal/core/session"
)

// Deps carries everything the router wires together. The session source and
// the gate are decided once at startup and never re-selected per request.
type Deps struct {
	Log         zerolog.Logger
	AuthService ports.AuthService
	UserService ports.UserService
	Source      session.Source
	SourceName  string // "token" or "static", for metrics
	Gate        *guard.Guard

	DefaultLocale    string
	SupportedLocales []string

	// AllowedOrigins feeds the CORS allow-list for the browser frontend.
	// TrustedHosts, when non-empty, rejects requests with a foreign Host
	// header before anything else runs.
	AllowedOrigins []string
	TrustedHosts   []string

	DB    *sql.DB
	Mongo *mongo.Database
	Redis *redis.Client // nil when the in-memory limiter is active

	// PromRegisterer receives the request-metric collectors. Nil means the
	// process-wide default registry; tests pass a fresh one per router.
	PromRegisterer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.TrustedHosts(deps.TrustedHosts))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "sifrex_auth",
		Registerer: deps.PromRegisterer,
	}))
	e.Use(middleware.Edge(middleware.DefaultEdgeConfig(deps.DefaultLocale, deps.SupportedLocales)))
	e.Use(middleware.Session(deps.Source, deps.SourceName))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/oauth/:provider", authHandler.OAuth)
	e.GET("/auth/session", authHandler.Session)

	// --- User routes (role-gated) ---
	memberOnly := middleware.RequireRole(deps.Gate, domain.RoleBasic, deps.DefaultLocale)
	adminOnly := middleware.RequireRole(deps.Gate, domain.RoleAdmin, deps.DefaultLocale)

	users := e.Group("/users")
	users.GET("/me", userHandler.Me, memberOnly)
	users.PUT("/me", userHandler.UpdateMe, memberOnly)
	users.PUT("/:id/role", userHandler.ChangeRole, adminOnly)
	users.GET("/:id/audit", userHandler.AuditTrail, adminOnly)
	users.GET("/stats", userHandler.Stats, adminOnly)

	// --- Role-gate landing page ---
	e.GET(guard.UnauthorizedPath, func(c echo.Context) error {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "unauthorized"})
	})

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
