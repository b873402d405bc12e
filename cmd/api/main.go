// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/admin"
	"github.com/fitsyy/gym-backend/internal/auth"
	"github.com/fitsyy/gym-backend/internal/booking"
	"github.com/fitsyy/gym-backend/internal/config"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/health"
	"github.com/fitsyy/gym-backend/internal/invite"
	"github.com/fitsyy/gym-backend/internal/mailer"
	"github.com/fitsyy/gym-backend/internal/member"
	"github.com/fitsyy/gym-backend/internal/middleware"
	"github.com/fitsyy/gym-backend/internal/report"
	"github.com/fitsyy/gym-backend/internal/schedule"
	"github.com/fitsyy/gym-backend/internal/server"
	"github.com/fitsyy/gym-backend/internal/tenant"
	"github.com/fitsyy/gym-backend/internal/trainer"
	"github.com/fitsyy/gym-backend/internal/user"
	"github.com/fitsyy/gym-backend/migrations"
)

const (
	drainDelay      = 5 * time.Second
	cleanupInterval = time.Hour
	cleanupGrace    = 24 * time.Hour
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, migrations.FS); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if err := ensureKeys(cfg); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB.DB, "fitsyy"),
	)

	policy, err := access.NewPolicy(cfg.Access)
	if err != nil {
		return err
	}
	evaluator := access.NewEvaluator(access.NewRepository(db.DB), policy)

	mail := mailer.NewLogMailer(logger)

	userSvc := user.NewService(user.NewRepository(db.DB))
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		jwtManager,
		userSvc,
		auth.NewRedisTokenStore(redis.Client),
		mail,
		auth.ServiceConfig{
			MagicLinkTTL:  cfg.Auth.MagicLinkTTL,
			PublicURL:     cfg.App.PublicURL,
			MagicLinkPath: cfg.Auth.MagicLinkPath,
		},
	)
	authHandler := auth.NewHandler(authSvc)
	verifier := auth.NewVerifier(jwtManager, authSvc)

	tenantSvc := tenant.NewService(tenant.NewRepository(db.DB), evaluator)
	inviteSvc := invite.NewService(invite.NewRepository(db.DB), evaluator, mail, invite.ServiceConfig{
		TTL:        cfg.Invite.TTL,
		PublicURL:  cfg.App.PublicURL,
		AcceptPath: cfg.Invite.AcceptPath,
	})

	var bookingMetrics *booking.Metrics
	if cfg.Metrics.Enabled {
		bookingMetrics = booking.NewMetrics(registry)
	}

	tenantHandler := tenant.NewHandler(tenantSvc)
	inviteHandler := invite.NewHandler(inviteSvc)
	memberHandler := member.NewHandler(member.NewService(member.NewRepository(db.DB), evaluator))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainer.NewRepository(db.DB), evaluator))
	scheduleHandler := schedule.NewHandler(schedule.NewService(schedule.NewRepository(db.DB), evaluator))
	bookingHandler := booking.NewHandler(booking.NewService(booking.NewStore(db.DB), evaluator, bookingMetrics))
	reportHandler := report.NewHandler(report.NewService(report.NewRepository(db.DB), evaluator))

	healthHandler := health.NewHandler(
		health.Check{Name: "database", Checker: db},
		health.Check{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Totals:     admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.NewMetrics(registry).Handler)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	authenticator := middleware.Authenticator(verifier)
	adminOnly := middleware.RequireAdmin(cfg.Admin.Emails)
	linkLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerHour(10, 3),
		KeyFunc:  middleware.KeyByIP,
		FailOpen: false,
	}).Handler
	tenantLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.Requests*5,
			cfg.RateLimit.Burst*5,
		),
		KeyFunc:  middleware.KeyByTenant,
		FailOpen: true,
	}).Handler

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, linkLimiter)
		userHandler.RegisterRoutes(r, authenticator)
		tenantHandler.RegisterRoutes(r, authenticator)
		inviteHandler.RegisterRoutes(r, authenticator)

		r.Route("/t/{"+middleware.TenantSlugParam+"}", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.TenantContext(tenantSvc, evaluator))
			r.Use(tenantLimiter)

			tenantHandler.RegisterScopedRoutes(r)
			inviteHandler.RegisterScopedRoutes(r)
			memberHandler.RegisterScopedRoutes(r)
			trainerHandler.RegisterScopedRoutes(r)
			scheduleHandler.RegisterScopedRoutes(r)
			bookingHandler.RegisterScopedRoutes(r)
			reportHandler.RegisterScopedRoutes(r)
		})

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	janitor := server.NewJanitor(cleanupInterval, logger,
		server.Task{Name: "refresh_tokens", Run: func(ctx context.Context) (int64, error) {
			return authSvc.PurgeExpired(ctx, cleanupGrace)
		}},
		server.Task{Name: "invites", Run: func(ctx context.Context) (int64, error) {
			return inviteSvc.PurgeExpired(ctx, cleanupGrace)
		}},
	)
	go janitor.Run(ctx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// ensureKeys writes a fresh ES256 key pair when none exists outside
// production. Production deployments must provision their keys.
func ensureKeys(cfg *config.Config) error {
	_, err := os.Stat(cfg.JWT.PrivateKeyPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat private key: %w", err)
	}
	if cfg.IsProduction() {
		return fmt.Errorf("private key %s not found", cfg.JWT.PrivateKeyPath)
	}

	for _, p := range []string{cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}

	slog.Warn("generating development signing key", "path", cfg.JWT.PrivateKeyPath)
	return auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
