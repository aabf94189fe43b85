// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

// Command api is the entry point for the Puuha HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/joho/godotenv"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/api"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/catalog"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/blob"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/config"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/constants"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/migration"
	pgstore "github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/postgres"
	redisstore "github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/redis"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/reference"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "puuha-api"))
	slog.SetDefault(log)

	log.Info("[Puuha] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env file is a development convenience; its absence is normal.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "puuha-api"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Blob Storage ───────────────────────────────────────────────────
	// Without a configured endpoint, images degrade to a no-op store so local
	// development does not require object storage.
	var blobs blob.Store
	if cfg.BlobEndpoint != "" {
		blobs = blob.NewS3Store(cfg.BlobEndpoint, cfg.BlobBucket, cfg.BlobToken)
		log.Info("blob_store_configured", slog.String("bucket", cfg.BlobBucket))
	} else {
		blobs = blob.NoopStore{}
		log.Warn("blob_store_disabled")
	}

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	catalogRepository := catalog.NewPostgresRepository(pool)
	catalogService := catalog.NewService(catalogRepository, blobs, log)
	catalogHandler := catalog.NewHandler(catalogService)

	referenceRepository := reference.NewPostgresRepository(pool)
	referenceService := reference.NewService(referenceRepository, rdb, log)
	referenceHandler := reference.NewHandler(referenceService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Catalog:   catalogHandler,
		Reference: referenceHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
