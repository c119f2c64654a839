package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/sifrex/auth-api/docs"
	"github.com/sifrex/auth-api/internal/api"
	"github.com/sifrex/auth-api/internal/core/guard"
	"github.com/sifrex/auth-api/internal/core/ports"
	"github.com/sifrex/auth-api/internal/core/service"
	"github.com/sifrex/auth-api/internal/core/session"
	"github.com/sifrex/auth-api/internal/infrastructure/config"
	mongodb "github.com/sifrex/auth-api/internal/infrastructure/db/mongo"
	"github.com/sifrex/auth-api/internal/infrastructure/db/postgres"
	redisdb "github.com/sifrex/auth-api/internal/infrastructure/db/redis"
	"github.com/sifrex/auth-api/internal/ratelimit"
	"github.com/sifrex/auth-api/pkg/logger"
)

// @title        Sifrex Auth API
// @version      1.0
// @description  Authentication and user management API for the Sifrex platform.
// @BasePath     /
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres unavailable")
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("postgres ready")

	mongoClient, mongoDB, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	log.Info().Msg("mongo ready")

	// --- Login limiter ---
	var (
		limiter ports.LoginLimiter
		rdb     *goredis.Client
	)
	switch cfg.RateLimit.Backend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
		log.Info().Msg("redis login limiter ready")
	default:
		limiter = ratelimit.NewMemory(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
	}

	// --- Session source: decided once, never re-evaluated per request ---
	var source session.Source
	sourceName := "token"
	if cfg.BypassActive(nil) {
		source = session.NewStaticSource(cfg.DevUserID, cfg.DevUserEmail, cfg.DevRole())
		sourceName = "static"
		log.Warn().
			Str("dev_user", cfg.DevUserEmail).
			Str("dev_role", cfg.DevUserRole).
			Msg("auth bypass active: serving a synthetic session to every request")
	} else {
		source = session.NewTokenSource(cfg.JWTSecret)
	}

	// --- Core wiring ---
	userRepo := postgres.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(mongoDB)
	issuer := session.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	gate := guard.New(logger.For("guard"))

	authService := service.NewAuthService(userRepo, auditRepo, limiter, issuer, logger.For("auth"))
	userService := service.NewUserService(userRepo, auditRepo, gate, logger.For("users"))

	e := api.NewRouter(api.Deps{
		Log:              log,
		AuthService:      authService,
		UserService:      userService,
		Source:           source,
		SourceName:       sourceName,
		Gate:             gate,
		DefaultLocale:    cfg.DefaultLocale,
		SupportedLocales: cfg.SupportedLocales,
		AllowedOrigins:   cfg.AllowedOrigins,
		TrustedHosts:     cfg.TrustedHosts(),
		DB:               db,
		Mongo:            mongoDB,
		Redis:            rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("server stopped")
}
