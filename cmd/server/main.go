// Command server is the entry point for the devfolio backend API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"devfolio_backend/internal/app/config"
	"devfolio_backend/internal/app/di"
	"devfolio_backend/internal/app/router"
	adminadapters "devfolio_backend/internal/feature/admin/adapters"
	adminhandler "devfolio_backend/internal/feature/admin/transport/handler"
	adminusecase "devfolio_backend/internal/feature/admin/usecase"
	authadapters "devfolio_backend/internal/feature/auth/adapters"
	authhandler "devfolio_backend/internal/feature/auth/transport/handler"
	authusecase "devfolio_backend/internal/feature/auth/usecase"
	"devfolio_backend/internal/platform/cookie"
	"devfolio_backend/internal/platform/db"
	jwtmw "devfolio_backend/internal/platform/jwt"
	"devfolio_backend/internal/platform/logging"
	infraredis "devfolio_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(os.Stdout, cfg.IsProduction(), cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	gdb, err := db.Open(cfg.DB())
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis（任意）
	ctx := context.Background()
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache and with in-memory rate limiting.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	profiles := di.NewProfileReader(rdb, gdb, cfg.CacheTTL())
	tokens := jwtmw.NewTokenService(cfg.Tokens())

	// Usecase
	authUC := authusecase.NewAuthUsecase(authadapters.NewUserGorm(gdb), authadapters.NewFollowGorm(gdb), profiles, tokens)
	adminUC := adminusecase.NewAdminUsecase(adminadapters.NewUserStoreGorm(gdb), profiles)

	if cfg.AdminSecret == "" {
		slog.Warn("ADMIN_SECRET is not set. Admin API is disabled.")
	}

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		Logger:         logger,
		Origins:        cfg.Origins(),
		Verifier:       tokens,
		Limiter:        di.NewRateLimiter(rdb, cfg.AuthRateLimit, cfg.RateWindow()),
		AdminSecret:    cfg.AdminSecret,
		TrustedProxies: cfg.Proxies(),
		Auth:           authhandler.NewAuthHandler(authUC, cookie.NewTransport(cfg.IsProduction())),
		Profile:        authhandler.NewProfileHandler(authUC),
		Admin:          adminhandler.NewAdminHandler(adminUC),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
